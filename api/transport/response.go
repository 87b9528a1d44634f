package transport

import "github.com/taskloop/backend/domain"

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewError builds an error body with an optional details string.
func NewError(message, details string) ErrorBody {
	return ErrorBody{Error: message, Details: details}
}

// RegisterResponse is returned by POST /api/auth/register.
type RegisterResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	UserID  string             `json:"userId"`
	User    domain.UserSummary `json:"user"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
