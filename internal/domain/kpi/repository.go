package kpi

import "context"

type KPIRepository interface {
	// UpsertMetric inserts a metric with targets, or overwrites the four
	// derived fields of the existing (user, month, year) row. Targets are
	// written on insert only.
	UpsertMetric(ctx context.Context, userID string, month, year int, result CalculationResult, targets Targets) (Metric, error)

	// GetMetric retrieves the metric for (user, month, year)
	GetMetric(ctx context.Context, userID string, month, year int) (Metric, error)

	// ListMetrics lists metrics newest first, capped at 12 rows
	ListMetrics(ctx context.Context, filter MetricFilter) ([]Metric, error)

	// UpsertEvaluation inserts an evaluation, or updates score/comments/
	// metric reference of the existing (user, month, year) row. EvaluatedBy
	// is written on insert only.
	UpsertEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error)

	// ListEvaluations lists a user's evaluations newest first, capped at 12
	ListEvaluations(ctx context.Context, userID string, month, year *int) ([]Evaluation, error)
}
