package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/token"
)

const userIDKey = "auth_user_id"

// Auth guards protected routes. It expects "Authorization: Bearer <token>",
// verifies the token and attaches the authenticated user id to the
// request. Failures are terminal for the request.
func Auth(tokens *token.Manager, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			header := string(ctx.Request.Header.Peek("Authorization"))
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(ctx, domain.ErrNoToken)
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			userID, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				unauthorized(ctx, domain.ErrInvalidToken)
				return
			}

			ctx.SetUserValue(userIDKey, userID)
			next(ctx)
		}
	}
}

// UserID returns the authenticated user id attached by Auth, or "" when
// the request did not pass through it.
func UserID(ctx *fasthttp.RequestCtx) string {
	if id, ok := ctx.UserValue(userIDKey).(string); ok {
		return id
	}
	return ""
}

func unauthorized(ctx *fasthttp.RequestCtx, err *domain.Error) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(err.Message, ""))
	ctx.SetBody(body)
}
