// Package web serves the server-rendered pages: registration and login
// forms, a dashboard and a task list. It consumes the same use cases as
// the REST API, with a Redis-backed cookie session instead of a bearer
// token. Task pages are always scoped to the logged-in user.
package web

import (
	"html/template"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/pkg/httpcontext"
	"github.com/taskloop/backend/repository"
	authUC "github.com/taskloop/backend/usecase/auth"
	taskUC "github.com/taskloop/backend/usecase/task"
)

// Config carries the view-layer session settings.
type Config struct {
	CookieName string
	SessionTTL time.Duration
}

type App struct {
	auth      *authUC.UseCase
	tasks     *taskUC.UseCase
	sessions  repository.SessionRepository
	adapter   *httpcontext.Adapter
	templates *template.Template
	cfg       Config
	logger    *zap.Logger
}

func NewApp(
	auth *authUC.UseCase,
	tasks *taskUC.UseCase,
	sessions repository.SessionRepository,
	adapter *httpcontext.Adapter,
	cfg Config,
	logger *zap.Logger,
) (*App, error) {
	if cfg.CookieName == "" {
		cfg.CookieName = "session_id"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &App{
		auth:      auth,
		tasks:     tasks,
		sessions:  sessions,
		adapter:   adapter,
		templates: templates,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Register mounts the view routes.
func (a *App) Register(r *router.Router) {
	r.GET("/", a.Dashboard)
	r.GET("/register", a.RegisterPage)
	r.POST("/register", a.RegisterSubmit)
	r.GET("/login", a.LoginPage)
	r.POST("/login", a.LoginSubmit)
	r.GET("/logout", a.Logout)

	r.GET("/tasks", a.requireSession(a.TasksPage))
	r.POST("/tasks", a.requireSession(a.TaskCreate))
	r.POST("/tasks/{id}/status", a.requireSession(a.TaskUpdateStatus))
	r.POST("/tasks/{id}/delete", a.requireSession(a.TaskDelete))
}

func redirect(ctx *fasthttp.RequestCtx, location string) {
	ctx.Redirect(location, fasthttp.StatusSeeOther)
}
