package repository

import (
	"context"

	"github.com/taskloop/backend/domain"
)

// TaskFilter scopes task listings. UserID is mandatory; Status is an
// optional explicit filter, never applied implicitly.
type TaskFilter struct {
	UserID string
	Status domain.TaskStatus
	Limit  int
	Offset int
}

// TaskRepository persists tasks. Mutations match on (id, userID) jointly
// so one user can never touch another user's rows.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id, userID string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}
