package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/task"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

// Create implements task.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := database.QuerierFromContext(ctx, r.db)

	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return task.Task{}, fmt.Errorf("failed to generate task id: %w", err)
		}
		t.ID = id.String()
	}

	query := `
		INSERT INTO tasks (
			id, user_id, title, description, status,
			assigned_by, location_id, due_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Status,
		t.AssignedBy,
		t.LocationID,
		t.DueDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, title, description, status, assigned_by, location_id,
		       due_date, started_at, completed_at, duration_minutes, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var t task.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.AssignedBy, &t.LocationID,
		&t.DueDate, &t.StartedAt, &t.CompletedAt, &t.DurationMinutes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// Update implements task.TaskRepository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE tasks
		SET status = $2, started_at = $3, completed_at = $4,
		    duration_minutes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID,
		t.Status,
		t.StartedAt,
		t.CompletedAt,
		t.DurationMinutes,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return t, nil
}

// ListByUser implements task.TaskRepository.
func (r *taskRepository) ListByUser(ctx context.Context, userID string, filter task.TaskFilter) ([]task.Task, error) {
	q := database.QuerierFromContext(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, status, assigned_by, location_id,
		       due_date, started_at, completed_at, duration_minutes, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY created_at DESC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return scanTaskRows(rows)
}

// ListCreatedBetween implements task.TaskRepository.
func (r *taskRepository) ListCreatedBetween(ctx context.Context, userID string, from, to time.Time) ([]task.Task, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, title, description, status, assigned_by, location_id,
		       due_date, started_at, completed_at, duration_minutes, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks between: %w", err)
	}
	defer rows.Close()

	return scanTaskRows(rows)
}

func scanTaskRows(rows pgx.Rows) ([]task.Task, error) {
	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.AssignedBy, &t.LocationID,
			&t.DueDate, &t.StartedAt, &t.CompletedAt, &t.DurationMinutes, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
