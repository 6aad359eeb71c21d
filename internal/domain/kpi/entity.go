package kpi

import "time"

// Metric holds the four derived monthly indicators plus their targets.
// Unique per (user, month, year); recomputation overwrites the derived
// fields and bumps UpdatedAt, never duplicates.
type Metric struct {
	ID                        string
	UserID                    string
	Month                     int
	Year                      int
	WorkHoursTotal            float64
	WorkHoursTarget           float64
	AvgResponseTimeSeconds    int
	ResponseTimeTargetSeconds int
	TaskCompletionRate        float64
	TaskCompletionTarget      float64
	ProductivityScore         float64
	ProductivityTarget        float64
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// Evaluation is a manager's overall score for a computed metric. Unique per
// (user, month, year); EvaluatedBy keeps the original evaluator on update.
type Evaluation struct {
	ID           string
	UserID       string
	MetricID     string
	Month        int
	Year         int
	EvaluatedBy  string
	OverallScore int
	Comments     *string
	CreatedAt    time.Time

	// DTO
	EvaluatorName *string
}

// Targets are the per-metric goals stamped when a metric row is first
// created. Recomputation never overwrites them.
type Targets struct {
	WorkHours           float64
	ResponseTimeSeconds int
	TaskCompletion      float64
	Productivity        float64
}

// CalculationResult carries the four derived fields out of the aggregator.
type CalculationResult struct {
	WorkHoursTotal         float64
	AvgResponseTimeSeconds int
	TaskCompletionRate     float64
	ProductivityScore      float64
}
