package repository

import (
	"context"

	"github.com/taskloop/backend/domain"
)

// UserRepository is the credential store. Lookups used by login match a
// single identifier against username OR email in one query.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
}
