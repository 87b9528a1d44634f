package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/internal/infrastructure/activitylog"
)

// AccessLog logs every request and appends it to the activity store.
// Store failures are logged and swallowed; observability must never fail
// a request.
func AccessLog(store *activitylog.Store, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			elapsed := time.Since(start)

			method := string(ctx.Method())
			path := string(ctx.Path())
			status := ctx.Response.StatusCode()

			logger.Info("request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
			)

			if store == nil {
				return
			}
			err := store.Append(activitylog.Entry{
				Method:   method,
				Path:     path,
				Status:   status,
				UserID:   UserID(ctx),
				Duration: elapsed,
			})
			if err != nil {
				logger.Warn("activity log append failed", zap.Error(err))
			}
		}
	}
}
