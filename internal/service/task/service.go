package task

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/task"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

type TaskServiceImpl struct {
	task.TaskRepository
}

func NewTaskService(taskRepo task.TaskRepository) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepo,
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return task.TaskResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)
	if !user.Role(role).CanManageOthers() {
		return task.TaskResponse{}, user.ErrManagerAccessRequired
	}

	t := task.Task{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusPending,
		AssignedBy:  &callerID,
		LocationID:  req.LocationID,
	}

	if req.DueDate != nil {
		due, _ := validator.IsValidDate(*req.DueDate)
		t.DueDate = &due
	}

	created, err := s.TaskRepository.Create(ctx, t)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	return mapTaskToResponse(created), nil
}

// UpdateStatus implements task.TaskService. StartedAt and CompletedAt are
// stamped once; revisiting a state never rewrites them. Terminal tasks
// reject every further transition.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, req task.UpdateStatusRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return task.TaskResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	t, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if t.UserID != callerID {
		role, _ := claims["role"].(string)
		if !user.Role(role).CanManageOthers() {
			return task.TaskResponse{}, task.ErrTaskNotFound
		}
	}

	if t.Status.Terminal() {
		return task.TaskResponse{}, task.ErrTaskAlreadyClosed
	}

	now := time.Now().UTC()
	newStatus := task.Status(req.Status)

	switch newStatus {
	case task.StatusInProgress:
		if t.StartedAt == nil {
			t.StartedAt = &now
		}
	case task.StatusCompleted:
		if t.CompletedAt == nil {
			t.CompletedAt = &now
			if t.StartedAt != nil {
				minutes := int(math.Floor(now.Sub(*t.StartedAt).Minutes()))
				t.DurationMinutes = &minutes
			}
		}
	}

	t.Status = newStatus

	updated, err := s.TaskRepository.Update(ctx, t)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	return mapTaskToResponse(updated), nil
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.TaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	targetID := callerID
	if filter.UserID != nil && *filter.UserID != "" {
		targetID = *filter.UserID
	}

	if targetID != callerID {
		role, _ := claims["role"].(string)
		if !user.Role(role).CanManageOthers() {
			return nil, user.ErrManagerAccessRequired
		}
	}

	tasks, err := s.TaskRepository.ListByUser(ctx, targetID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, mapTaskToResponse(t))
	}

	return responses, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(layout)
	return &formatted
}

func mapTaskToResponse(t task.Task) task.TaskResponse {
	return task.TaskResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          string(t.Status),
		AssignedBy:      t.AssignedBy,
		LocationID:      t.LocationID,
		DueDate:         timePtrToString(t.DueDate, "2006-01-02"),
		StartedAt:       timePtrToString(t.StartedAt, time.RFC3339),
		CompletedAt:     timePtrToString(t.CompletedAt, time.RFC3339),
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}
