// Package auth orchestrates registration and login: uniqueness check,
// explicit password hashing before persist, and token issuance.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/logger"
	"github.com/taskloop/backend/pkg/password"
	"github.com/taskloop/backend/pkg/token"
	"github.com/taskloop/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	tokens *token.Manager
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Manager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new user and issues a token bound to it. The email
// must be unused; the password is hashed before anything is persisted.
func (uc *UseCase) Register(ctx context.Context, username, email, plain string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || plain == "" {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "username, email and password are required")
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "hashing failed", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	logger.WithRequestID(ctx, uc.logger).Info("user registered", zap.String("user_id", user.ID))
	return user, signed, nil
}

// Profile returns the user record for an authenticated id.
func (uc *UseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// Login verifies credentials for a username or email and issues a token.
// An unknown identifier surfaces ErrUserNotFound, a wrong password
// ErrInvalidCredentials; both carry the unauthorized code.
func (uc *UseCase) Login(ctx context.Context, identifier, plain string) (*domain.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plain == "" {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "identifier and password are required")
	}

	user, err := uc.users.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, "", err
	}

	if !password.Verify(plain, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	logger.WithRequestID(ctx, uc.logger).Info("user logged in", zap.String("user_id", user.ID))
	return user, signed, nil
}
