package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

// respondError maps a domain error onto a status and {error, details?}
// body. Unclassified errors surface as a generic 500; fallbackMessage
// lets routes keep their own catch-all wording and status.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error, fallbackStatus int, fallbackMessage string) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeInvalid, domain.ErrCodeConflict:
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(dErr.Message, ""))
			return
		case domain.ErrCodeUnauthorized:
			h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(dErr.Message, ""))
			return
		case domain.ErrCodeNotFound:
			h.respondJSON(ctx, http.StatusNotFound, transport.NewError(dErr.Message, ""))
			return
		}
	}

	h.logger.Error("request failed", zap.Error(err))
	if fallbackMessage == "" {
		fallbackStatus = http.StatusInternalServerError
		fallbackMessage = "Internal server error"
	}
	h.respondJSON(ctx, fallbackStatus, transport.NewError(fallbackMessage, err.Error()))
}
