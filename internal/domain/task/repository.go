package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, t Task) (Task, error)

	// GetByID retrieves a task by ID
	GetByID(ctx context.Context, id string) (Task, error)

	// Update updates an existing task
	Update(ctx context.Context, t Task) (Task, error)

	// ListByUser lists a user's tasks, newest first
	ListByUser(ctx context.Context, userID string, filter TaskFilter) ([]Task, error)

	// ListCreatedBetween returns a user's tasks with created_at inside
	// [from, to], used by the KPI aggregation window
	ListCreatedBetween(ctx context.Context, userID string, from, to time.Time) ([]Task, error)
}
