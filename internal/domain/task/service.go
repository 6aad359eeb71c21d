package task

import "context"

type TaskService interface {
	// Create assigns a task to a user (manager/admin)
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	// UpdateStatus moves a task through its lifecycle
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (TaskResponse, error)

	// List lists tasks for the caller, or for another user when the caller
	// is a manager/admin
	List(ctx context.Context, filter TaskFilter) ([]TaskResponse, error)
}
