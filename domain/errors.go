package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure independently of the transport layer.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error is a domain-level error with a stable code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. Unknown user and bad password both map to 401
// but keep distinct messages; clients rely on the exact strings.
var (
	ErrUserNotFound       = NewError(ErrCodeUnauthorized, "User not found")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "Invalid credentials")
	ErrUserExists         = NewError(ErrCodeConflict, "User already exists")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "Task not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrNoToken            = NewError(ErrCodeUnauthorized, "No token provided")
	ErrInvalidToken       = NewError(ErrCodeUnauthorized, "Invalid token")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
