package web

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
)

// startSession persists a new session for the user and sets the cookie.
func (a *App) startSession(ctx context.Context, httpCtx *fasthttp.RequestCtx, userID, token string) error {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(a.cfg.SessionTTL),
	}
	if err := a.sessions.Save(ctx, session); err != nil {
		return err
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(a.cfg.CookieName)
	cookie.SetValue(session.ID)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(session.ExpiresAt)
	httpCtx.Response.Header.SetCookie(cookie)
	return nil
}

// currentSession resolves the cookie to a live session, nil when the
// visitor is not logged in or the session has lapsed.
func (a *App) currentSession(ctx context.Context, httpCtx *fasthttp.RequestCtx) *domain.Session {
	id := string(httpCtx.Request.Header.Cookie(a.cfg.CookieName))
	if id == "" {
		return nil
	}

	session, err := a.sessions.Get(ctx, id)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			a.logger.Warn("session lookup failed", zap.Error(err))
		}
		return nil
	}
	if session.IsExpired(time.Now()) {
		_ = a.sessions.Delete(ctx, id)
		return nil
	}
	return session
}

// endSession drops the stored session and expires the cookie.
func (a *App) endSession(ctx context.Context, httpCtx *fasthttp.RequestCtx) {
	if id := string(httpCtx.Request.Header.Cookie(a.cfg.CookieName)); id != "" {
		if err := a.sessions.Delete(ctx, id); err != nil {
			a.logger.Warn("session delete failed", zap.Error(err))
		}
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(a.cfg.CookieName)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	httpCtx.Response.Header.SetCookie(cookie)
}

// requireSession redirects logged-out visitors to the login form. It
// attaches the request context once and hands it to the page handler,
// so one request carries one id and one deadline.
func (a *App) requireSession(next func(ctx context.Context, httpCtx *fasthttp.RequestCtx, session *domain.Session)) fasthttp.RequestHandler {
	return func(httpCtx *fasthttp.RequestCtx) {
		stdCtx, cancel := a.adapter.Attach(httpCtx)
		defer cancel()

		session := a.currentSession(stdCtx, httpCtx)
		if session == nil {
			redirect(httpCtx, "/login")
			return
		}
		next(stdCtx, httpCtx, session)
	}
}
