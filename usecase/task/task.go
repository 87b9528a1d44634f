// Package task applies the owner-scoped task rules on top of the
// repository: required titles, valid statuses, and a mandatory owner on
// every operation.
package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/logger"
	"github.com/taskloop/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// Create persists a pending task owned by userID. The title is required
// after trimming; tasks without an owner are rejected outright.
func (uc *UseCase) Create(ctx context.Context, userID, title string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if userID == "" {
		return nil, domain.ErrInvalidPayload
	}

	task := &domain.Task{
		UserID: userID,
		Title:  title,
		Status: domain.TaskStatusPending,
	}
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	logger.WithRequestID(ctx, uc.logger).Info("task created", zap.String("task_id", created.ID), zap.String("user_id", userID))
	return created, nil
}

// List returns the caller's tasks. No status filter is applied unless
// the caller asks for one.
func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if filter.UserID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown status filter")
	}
	return uc.tasks.List(ctx, filter)
}

// UpdateStatus moves a task the caller owns into status. A mismatched
// owner is indistinguishable from an absent task.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, userID string, status domain.TaskStatus) (*domain.Task, error) {
	if id == "" || userID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if !status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "status must be pending, completed or deleted")
	}

	updated, err := uc.tasks.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		return nil, err
	}

	logger.WithRequestID(ctx, uc.logger).Info("task status updated",
		zap.String("task_id", id),
		zap.String("user_id", userID),
		zap.String("status", string(status)),
	)
	return updated, nil
}

// Delete removes a task the caller owns.
func (uc *UseCase) Delete(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return domain.ErrInvalidPayload
	}
	if err := uc.tasks.Delete(ctx, id, userID); err != nil {
		return err
	}

	logger.WithRequestID(ctx, uc.logger).Info("task deleted", zap.String("task_id", id), zap.String("user_id", userID))
	return nil
}
