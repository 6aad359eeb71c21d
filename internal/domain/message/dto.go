package message

import (
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

type RecordResponseRequest struct {
	MessageID string `json:"message_id"`
}

func (r *RecordResponseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MessageID) {
		errs = append(errs, validator.ValidationError{
			Field:   "message_id",
			Message: "message_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResponseFilter struct {
	StartDate *string
	EndDate   *string
}

func (f *ResponseFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResponseResponse struct {
	ID                  string `json:"id"`
	MessageID           string `json:"message_id"`
	UserID              string `json:"user_id"`
	RespondedAt         string `json:"responded_at"`
	ResponseTimeSeconds int    `json:"response_time_seconds"`
}
