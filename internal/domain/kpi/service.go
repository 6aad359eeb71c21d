package kpi

import "context"

type KPIService interface {
	// Calculate recomputes the four monthly metrics for a user and upserts
	// the metric row. Idempotent; safe to re-invoke.
	Calculate(ctx context.Context, req CalculateRequest) (MetricResponse, error)

	// CalculateForUser is the claims-free variant used by the recompute job
	CalculateForUser(ctx context.Context, userID string, month, year int) (MetricResponse, error)

	// ListMetrics lists stored metrics
	ListMetrics(ctx context.Context, filter MetricFilter) ([]MetricResponse, error)

	// RecordEvaluation attaches a manager score to a computed metric
	RecordEvaluation(ctx context.Context, req RecordEvaluationRequest) (EvaluationResponse, error)

	// ListEvaluations lists a user's evaluations
	ListEvaluations(ctx context.Context, userID string, month, year *int) ([]EvaluationResponse, error)
}
