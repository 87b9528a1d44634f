package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

type authFormData struct {
	Error   string
	Success string
}

type dashboardData struct {
	User           *domain.UserSummary
	PendingCount   int
	CompletedCount int
}

type tasksPageData struct {
	Tasks []domain.Task
	Error string
}

// Dashboard renders the landing page: task counts for a logged-in user,
// a public page otherwise.
func (a *App) Dashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := a.adapter.Attach(ctx)
	defer cancel()

	data := dashboardData{}
	if session := a.currentSession(stdCtx, ctx); session != nil {
		user, err := a.auth.Profile(stdCtx, session.UserID)
		if err != nil {
			// Session points at a vanished user; treat as logged out.
			a.render(ctx, "dashboard.html", data)
			return
		}
		summary := user.Summary()
		data.User = &summary

		tasks, err := a.tasks.List(stdCtx, repository.TaskFilter{UserID: session.UserID})
		if err != nil {
			a.logger.Warn("dashboard task listing failed", zap.Error(err))
		}
		for _, t := range tasks {
			switch t.Status {
			case domain.TaskStatusPending:
				data.PendingCount++
			case domain.TaskStatusCompleted:
				data.CompletedCount++
			}
		}
	}
	a.render(ctx, "dashboard.html", data)
}

func (a *App) RegisterPage(ctx *fasthttp.RequestCtx) {
	a.render(ctx, "register.html", authFormData{})
}

// RegisterSubmit runs the same registration contract as the API:
// username, email and password, then on to the login form.
func (a *App) RegisterSubmit(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := a.adapter.Attach(ctx)
	defer cancel()

	username := string(ctx.PostArgs().Peek("username"))
	email := string(ctx.PostArgs().Peek("email"))
	password := string(ctx.PostArgs().Peek("password"))

	if _, _, err := a.auth.Register(stdCtx, username, email, password); err != nil {
		ctx.SetStatusCode(http.StatusBadRequest)
		a.render(ctx, "register.html", authFormData{Error: viewError(err)})
		return
	}

	redirect(ctx, "/login?success=registered")
}

func (a *App) LoginPage(ctx *fasthttp.RequestCtx) {
	data := authFormData{}
	if string(ctx.QueryArgs().Peek("success")) == "registered" {
		data.Success = "Registration successful, please log in"
	}
	a.render(ctx, "login.html", data)
}

// LoginSubmit verifies credentials, mints a token and stores it in a new
// cookie session.
func (a *App) LoginSubmit(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := a.adapter.Attach(ctx)
	defer cancel()

	identifier := string(ctx.PostArgs().Peek("usernameOrEmail"))
	password := string(ctx.PostArgs().Peek("password"))

	user, token, err := a.auth.Login(stdCtx, identifier, password)
	if err != nil {
		ctx.SetStatusCode(http.StatusUnauthorized)
		a.render(ctx, "login.html", authFormData{Error: "Invalid credentials"})
		return
	}

	if err := a.startSession(stdCtx, ctx, user.ID, token); err != nil {
		a.logger.Error("session start failed", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		a.render(ctx, "login.html", authFormData{Error: "Login failed, try again"})
		return
	}

	redirect(ctx, "/tasks")
}

func (a *App) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := a.adapter.Attach(ctx)
	defer cancel()

	a.endSession(stdCtx, ctx)
	redirect(ctx, "/login")
}

// TasksPage lists the logged-in user's tasks.
func (a *App) TasksPage(stdCtx context.Context, ctx *fasthttp.RequestCtx, session *domain.Session) {
	tasks, err := a.tasks.List(stdCtx, repository.TaskFilter{UserID: session.UserID})
	if err != nil {
		a.logger.Error("task listing failed", zap.Error(err))
		a.render(ctx, "tasks.html", tasksPageData{Error: "Could not load tasks"})
		return
	}
	a.render(ctx, "tasks.html", tasksPageData{Tasks: tasks})
}

func (a *App) TaskCreate(stdCtx context.Context, ctx *fasthttp.RequestCtx, session *domain.Session) {
	title := string(ctx.PostArgs().Peek("title"))
	if _, err := a.tasks.Create(stdCtx, session.UserID, title); err != nil {
		ctx.SetStatusCode(http.StatusBadRequest)
		a.render(ctx, "tasks.html", tasksPageData{Error: viewError(err)})
		return
	}
	redirect(ctx, "/tasks")
}

func (a *App) TaskUpdateStatus(stdCtx context.Context, ctx *fasthttp.RequestCtx, session *domain.Session) {
	id, _ := ctx.UserValue("id").(string)
	status := domain.TaskStatus(ctx.PostArgs().Peek("status"))
	if _, err := a.tasks.UpdateStatus(stdCtx, id, session.UserID, status); err != nil {
		a.logger.Warn("task status update failed", zap.String("task_id", id), zap.Error(err))
	}
	redirect(ctx, "/tasks")
}

func (a *App) TaskDelete(stdCtx context.Context, ctx *fasthttp.RequestCtx, session *domain.Session) {
	id, _ := ctx.UserValue("id").(string)
	if err := a.tasks.Delete(stdCtx, id, session.UserID); err != nil {
		a.logger.Warn("task delete failed", zap.String("task_id", id), zap.Error(err))
	}
	redirect(ctx, "/tasks")
}

// viewError keeps browser-facing messages to the domain message and
// hides anything unclassified.
func viewError(err error) string {
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Code != domain.ErrCodeInternal {
		return dErr.Message
	}
	return "Something went wrong"
}
