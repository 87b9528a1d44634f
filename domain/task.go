package domain

import "time"

// TaskStatus enumerates the lifecycle states a task can be in.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusDeleted   TaskStatus = "deleted"
)

// Valid reports whether the status is one of the known states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusDeleted:
		return true
	}
	return false
}

// Task is a user-owned to-do item. UserID is mandatory: every read and
// mutation is filtered by (id, user_id) jointly, never by id alone.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskStatusCompleted
}
