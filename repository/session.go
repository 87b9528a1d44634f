package repository

import (
	"context"

	"github.com/taskloop/backend/domain"
)

// SessionRepository stores view-layer login sessions.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
