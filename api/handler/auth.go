package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskloop/backend/api/transport"
	"github.com/taskloop/backend/pkg/httpcontext"
	authUC "github.com/taskloop/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid payload", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, signed, err := h.uc.Register(stdCtx, req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err, http.StatusBadRequest, "Registration failed")
		return
	}

	h.respondJSON(ctx, http.StatusCreated, transport.RegisterResponse{
		Message: "Registration successful",
		Token:   signed,
		UserID:  user.ID,
		User:    user.Summary(),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid payload", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, signed, err := h.uc.Login(stdCtx, req.UsernameOrEmail, req.Password)
	if err != nil {
		h.respondError(ctx, err, http.StatusBadRequest, "Login failed")
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.LoginResponse{
		Message: "Login successful",
		Token:   signed,
		UserID:  user.ID,
	})
}
