package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskloop/backend/api/handler"
	"github.com/taskloop/backend/web"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
	Views  *web.App
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New wires the REST API and the server-rendered views onto one router.
// The auth middleware guards the task API; the views carry their own
// cookie-session guard.
func New(handlers Handlers, auth Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)

	// Protected task routes
	r.POST("/api/tasks", auth(handlers.Task.Create))
	r.GET("/api/tasks", auth(handlers.Task.List))
	r.PUT("/api/tasks/{id}", auth(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", auth(handlers.Task.Delete))

	// Server-rendered views
	if handlers.Views != nil {
		handlers.Views.Register(r)
	}

	return r
}
