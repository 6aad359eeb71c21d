package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workpulse/attendance-backend-go/internal/domain/kpi"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type kpiRepository struct {
	db *database.DB
}

func NewKPIRepository(db *database.DB) kpi.KPIRepository {
	return &kpiRepository{db: db}
}

// UpsertMetric implements kpi.KPIRepository. Targets are written on insert
// only; recomputation touches the four derived fields and updated_at.
func (r *kpiRepository) UpsertMetric(ctx context.Context, userID string, month, year int, result kpi.CalculationResult, targets kpi.Targets) (kpi.Metric, error) {
	q := database.QuerierFromContext(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return kpi.Metric{}, fmt.Errorf("failed to generate metric id: %w", err)
	}

	query := `
		INSERT INTO kpi_metrics (
			id, user_id, month, year,
			work_hours_total, work_hours_target,
			avg_response_time_seconds, response_time_target_seconds,
			task_completion_rate, task_completion_target,
			productivity_score, productivity_target
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, month, year)
		DO UPDATE SET work_hours_total = EXCLUDED.work_hours_total,
		              avg_response_time_seconds = EXCLUDED.avg_response_time_seconds,
		              task_completion_rate = EXCLUDED.task_completion_rate,
		              productivity_score = EXCLUDED.productivity_score,
		              updated_at = NOW()
		RETURNING id, user_id, month, year,
		          work_hours_total, work_hours_target,
		          avg_response_time_seconds, response_time_target_seconds,
		          task_completion_rate, task_completion_target,
		          productivity_score, productivity_target,
		          created_at, updated_at
	`

	var m kpi.Metric
	err = q.QueryRow(ctx, query,
		id.String(), userID, month, year,
		result.WorkHoursTotal, targets.WorkHours,
		result.AvgResponseTimeSeconds, targets.ResponseTimeSeconds,
		result.TaskCompletionRate, targets.TaskCompletion,
		result.ProductivityScore, targets.Productivity,
	).Scan(
		&m.ID, &m.UserID, &m.Month, &m.Year,
		&m.WorkHoursTotal, &m.WorkHoursTarget,
		&m.AvgResponseTimeSeconds, &m.ResponseTimeTargetSeconds,
		&m.TaskCompletionRate, &m.TaskCompletionTarget,
		&m.ProductivityScore, &m.ProductivityTarget,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return kpi.Metric{}, fmt.Errorf("failed to upsert kpi metric: %w", err)
	}

	return m, nil
}

// GetMetric implements kpi.KPIRepository.
func (r *kpiRepository) GetMetric(ctx context.Context, userID string, month, year int) (kpi.Metric, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, month, year,
		       work_hours_total, work_hours_target,
		       avg_response_time_seconds, response_time_target_seconds,
		       task_completion_rate, task_completion_target,
		       productivity_score, productivity_target,
		       created_at, updated_at
		FROM kpi_metrics
		WHERE user_id = $1 AND month = $2 AND year = $3
	`

	var m kpi.Metric
	err := q.QueryRow(ctx, query, userID, month, year).Scan(
		&m.ID, &m.UserID, &m.Month, &m.Year,
		&m.WorkHoursTotal, &m.WorkHoursTarget,
		&m.AvgResponseTimeSeconds, &m.ResponseTimeTargetSeconds,
		&m.TaskCompletionRate, &m.TaskCompletionTarget,
		&m.ProductivityScore, &m.ProductivityTarget,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.Metric{}, kpi.ErrMetricNotFound
		}
		return kpi.Metric{}, fmt.Errorf("failed to get kpi metric: %w", err)
	}

	return m, nil
}

// ListMetrics implements kpi.KPIRepository.
func (r *kpiRepository) ListMetrics(ctx context.Context, filter kpi.MetricFilter) ([]kpi.Metric, error) {
	q := database.QuerierFromContext(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("month = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}

	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argPos))
		args = append(args, *filter.Year)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, month, year,
		       work_hours_total, work_hours_target,
		       avg_response_time_seconds, response_time_target_seconds,
		       task_completion_rate, task_completion_target,
		       productivity_score, productivity_target,
		       created_at, updated_at
		FROM kpi_metrics
		WHERE %s
		ORDER BY year DESC, month DESC
		LIMIT 12
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi metrics: %w", err)
	}
	defer rows.Close()

	var metrics []kpi.Metric
	for rows.Next() {
		var m kpi.Metric
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Month, &m.Year,
			&m.WorkHoursTotal, &m.WorkHoursTarget,
			&m.AvgResponseTimeSeconds, &m.ResponseTimeTargetSeconds,
			&m.TaskCompletionRate, &m.TaskCompletionTarget,
			&m.ProductivityScore, &m.ProductivityTarget,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan kpi metric: %w", err)
		}
		metrics = append(metrics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpi metrics: %w", err)
	}

	return metrics, nil
}

// UpsertEvaluation implements kpi.KPIRepository. EvaluatedBy is written on
// insert only; later upserts keep the original evaluator.
func (r *kpiRepository) UpsertEvaluation(ctx context.Context, eval kpi.Evaluation) (kpi.Evaluation, error) {
	q := database.QuerierFromContext(ctx, r.db)

	if eval.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return kpi.Evaluation{}, fmt.Errorf("failed to generate evaluation id: %w", err)
		}
		eval.ID = id.String()
	}

	query := `
		INSERT INTO kpi_evaluations (
			id, user_id, kpi_metric_id, month, year,
			evaluated_by, overall_score, comments
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, month, year)
		DO UPDATE SET kpi_metric_id = EXCLUDED.kpi_metric_id,
		              overall_score = EXCLUDED.overall_score,
		              comments = EXCLUDED.comments
		RETURNING id, evaluated_by, created_at
	`

	err := q.QueryRow(ctx, query,
		eval.ID,
		eval.UserID,
		eval.MetricID,
		eval.Month,
		eval.Year,
		eval.EvaluatedBy,
		eval.OverallScore,
		eval.Comments,
	).Scan(&eval.ID, &eval.EvaluatedBy, &eval.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return kpi.Evaluation{}, kpi.ErrMetricNotFound
		}
		return kpi.Evaluation{}, fmt.Errorf("failed to upsert kpi evaluation: %w", err)
	}

	return eval, nil
}

// ListEvaluations implements kpi.KPIRepository.
func (r *kpiRepository) ListEvaluations(ctx context.Context, userID string, month, year *int) ([]kpi.Evaluation, error) {
	q := database.QuerierFromContext(ctx, r.db)

	conditions := []string{"e.user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if month != nil {
		conditions = append(conditions, fmt.Sprintf("e.month = $%d", argPos))
		args = append(args, *month)
		argPos++
	}

	if year != nil {
		conditions = append(conditions, fmt.Sprintf("e.year = $%d", argPos))
		args = append(args, *year)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.user_id, e.kpi_metric_id, e.month, e.year,
		       e.evaluated_by, e.overall_score, e.comments, e.created_at,
		       u.full_name
		FROM kpi_evaluations e
		JOIN users u ON u.id = e.evaluated_by
		WHERE %s
		ORDER BY e.year DESC, e.month DESC
		LIMIT 12
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi evaluations: %w", err)
	}
	defer rows.Close()

	var evals []kpi.Evaluation
	for rows.Next() {
		var e kpi.Evaluation
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.MetricID, &e.Month, &e.Year,
			&e.EvaluatedBy, &e.OverallScore, &e.Comments, &e.CreatedAt,
			&e.EvaluatorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan kpi evaluation: %w", err)
		}
		evals = append(evals, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kpi evaluations: %w", err)
	}

	return evals, nil
}
