package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type workLogRepository struct {
	db *database.DB
}

func NewWorkLogRepository(db *database.DB) worklog.WorkLogRepository {
	return &workLogRepository{db: db}
}

// Create implements worklog.WorkLogRepository.
func (r *workLogRepository) Create(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	if log.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return worklog.WorkLog{}, fmt.Errorf("failed to generate work log id: %w", err)
		}
		log.ID = id.String()
	}

	query := `
		INSERT INTO work_logs (
			id, user_id, date, start_time, end_time,
			duration_minutes, description, project_tag
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID,
		log.UserID,
		log.Date,
		log.StartTime,
		log.EndTime,
		log.DurationMinutes,
		log.Description,
		log.ProjectTag,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return worklog.WorkLog{}, fmt.Errorf("failed to create work log: %w", err)
	}

	return log, nil
}

// GetByID implements worklog.WorkLogRepository.
func (r *workLogRepository) GetByID(ctx context.Context, id string) (worklog.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time,
		       duration_minutes, description, project_tag, created_at, updated_at
		FROM work_logs
		WHERE id = $1
	`

	var log worklog.WorkLog
	err := q.QueryRow(ctx, query, id).Scan(
		&log.ID, &log.UserID, &log.Date, &log.StartTime, &log.EndTime,
		&log.DurationMinutes, &log.Description, &log.ProjectTag, &log.CreatedAt, &log.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
		}
		return worklog.WorkLog{}, fmt.Errorf("failed to get work log: %w", err)
	}

	return log, nil
}

// Update implements worklog.WorkLogRepository.
func (r *workLogRepository) Update(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE work_logs
		SET end_time = $2, duration_minutes = $3, description = $4,
		    project_tag = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID,
		log.EndTime,
		log.DurationMinutes,
		log.Description,
		log.ProjectTag,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
		}
		return worklog.WorkLog{}, fmt.Errorf("failed to update work log: %w", err)
	}

	return log, nil
}

// ListByUser implements worklog.WorkLogRepository.
func (r *workLogRepository) ListByUser(ctx context.Context, userID string, filter worklog.WorkLogFilter) ([]worklog.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("date = $%d::date", argPos))
		args = append(args, *filter.Date)
		argPos++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d::date", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d::date", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, date, start_time, end_time,
		       duration_minutes, description, project_tag, created_at, updated_at
		FROM work_logs
		WHERE %s
		ORDER BY date DESC, start_time DESC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}
	defer rows.Close()

	return scanWorkLogRows(rows)
}

// ListBetween implements worklog.WorkLogRepository.
func (r *workLogRepository) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time,
		       duration_minutes, description, project_tag, created_at, updated_at
		FROM work_logs
		WHERE user_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC, start_time ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs between: %w", err)
	}
	defer rows.Close()

	return scanWorkLogRows(rows)
}

func scanWorkLogRows(rows pgx.Rows) ([]worklog.WorkLog, error) {
	var logs []worklog.WorkLog
	for rows.Next() {
		var log worklog.WorkLog
		if err := rows.Scan(
			&log.ID, &log.UserID, &log.Date, &log.StartTime, &log.EndTime,
			&log.DurationMinutes, &log.Description, &log.ProjectTag, &log.CreatedAt, &log.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work logs: %w", err)
	}

	return logs, nil
}
