package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

type fakeTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	f.nextID++
	task.ID = fmt.Sprintf("task-%d", f.nextID)
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	f.tasks[task.ID] = &copied
	return task, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id, userID string, status domain.TaskStatus) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id, userID string) error {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func TestCreateDefaultsToPending(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil)

	created, err := uc.Create(context.Background(), "user-1", "  buy milk  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "buy milk" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if created.Status != domain.TaskStatusPending {
		t.Fatalf("status %q, want pending", created.Status)
	}
	if created.UserID != "user-1" {
		t.Fatalf("owner %q, want user-1", created.UserID)
	}
}

func TestCreateRejectsEmptyTitleAndOwner(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil)

	if _, err := uc.Create(context.Background(), "user-1", "   "); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("blank title: want invalid, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "", "buy milk"); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("missing owner: want invalid, got %v", err)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, _ := uc.Create(context.Background(), "user-1", "buy milk")

	if _, err := uc.UpdateStatus(context.Background(), created.ID, "user-1", "archived"); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("unknown status accepted: %v", err)
	}

	updated, err := uc.UpdateStatus(context.Background(), created.ID, "user-1", domain.TaskStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.TaskStatusCompleted {
		t.Fatalf("status %q, want completed", updated.Status)
	}
}

func TestCrossOwnerAccessIsNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, _ := uc.Create(context.Background(), "user-b", "b's task")

	if _, err := uc.UpdateStatus(context.Background(), created.ID, "user-a", domain.TaskStatusCompleted); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("cross-owner update: want not found, got %v", err)
	}
	if err := uc.Delete(context.Background(), created.ID, "user-a"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("cross-owner delete: want not found, got %v", err)
	}

	// The task is untouched for its real owner.
	tasks, err := uc.List(context.Background(), repository.TaskFilter{UserID: "user-b"})
	if err != nil || len(tasks) != 1 || tasks[0].Status != domain.TaskStatusPending {
		t.Fatalf("owner's task was disturbed: %v %v", tasks, err)
	}
}

func TestTaskLifecycleRoundTrip(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", "buy milk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tasks, _ := uc.List(ctx, repository.TaskFilter{UserID: "user-1"})
	if len(tasks) != 1 || tasks[0].ID != created.ID || tasks[0].Status != domain.TaskStatusPending {
		t.Fatalf("list after create: %+v", tasks)
	}

	if _, err := uc.UpdateStatus(ctx, created.ID, "user-1", domain.TaskStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	tasks, _ = uc.List(ctx, repository.TaskFilter{UserID: "user-1"})
	if len(tasks) != 1 || tasks[0].Status != domain.TaskStatusCompleted {
		t.Fatalf("list after update: %+v", tasks)
	}

	if err := uc.Delete(ctx, created.ID, "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	tasks, _ = uc.List(ctx, repository.TaskFilter{UserID: "user-1"})
	if len(tasks) != 0 {
		t.Fatalf("list after delete: %+v", tasks)
	}

	if _, err := uc.UpdateStatus(ctx, created.ID, "user-1", domain.TaskStatusPending); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("update after delete: want not found, got %v", err)
	}
	if err := uc.Delete(ctx, created.ID, "user-1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("second delete: want not found, got %v", err)
	}
}

func TestListStatusFilter(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	ctx := context.Background()

	first, _ := uc.Create(ctx, "user-1", "one")
	uc.Create(ctx, "user-1", "two")
	uc.UpdateStatus(ctx, first.ID, "user-1", domain.TaskStatusCompleted)

	all, _ := uc.List(ctx, repository.TaskFilter{UserID: "user-1"})
	if len(all) != 2 {
		t.Fatalf("unfiltered list: %d tasks, want 2", len(all))
	}

	completed, _ := uc.List(ctx, repository.TaskFilter{UserID: "user-1", Status: domain.TaskStatusCompleted})
	if len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("filtered list: %+v", completed)
	}

	if _, err := uc.List(ctx, repository.TaskFilter{UserID: "user-1", Status: "bogus"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("bogus filter accepted: %v", err)
	}
}
