package kpi

import (
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

type CalculateRequest struct {
	UserID *string `json:"user_id,omitempty"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordEvaluationRequest struct {
	UserID       string  `json:"user_id"`
	MetricID     string  `json:"kpi_metric_id"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	OverallScore int     `json:"overall_score"`
	Comments     *string `json:"comments,omitempty"`
}

func (r *RecordEvaluationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.MetricID) {
		errs = append(errs, validator.ValidationError{
			Field:   "kpi_metric_id",
			Message: "kpi_metric_id is required",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MetricFilter struct {
	UserID *string
	Month  *int
	Year   *int
}

type MetricResponse struct {
	ID                        string  `json:"id"`
	UserID                    string  `json:"user_id"`
	Month                     int     `json:"month"`
	Year                      int     `json:"year"`
	WorkHoursTotal            float64 `json:"work_hours_total"`
	WorkHoursTarget           float64 `json:"work_hours_target"`
	AvgResponseTimeSeconds    int     `json:"avg_response_time_seconds"`
	ResponseTimeTargetSeconds int     `json:"response_time_target_seconds"`
	TaskCompletionRate        float64 `json:"task_completion_rate"`
	TaskCompletionTarget      float64 `json:"task_completion_target"`
	ProductivityScore         float64 `json:"productivity_score"`
	ProductivityTarget        float64 `json:"productivity_target"`
	UpdatedAt                 string  `json:"updated_at"`
}

type EvaluationResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	MetricID      string  `json:"kpi_metric_id"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	EvaluatedBy   string  `json:"evaluated_by"`
	EvaluatorName *string `json:"evaluator_name,omitempty"`
	OverallScore  int     `json:"overall_score"`
	Comments      *string `json:"comments,omitempty"`
}
