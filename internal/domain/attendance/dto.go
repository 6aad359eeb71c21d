package attendance

import (
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SCAN DTOs
// ========================================

const (
	ScanTypeCheckIn  = "check-in"
	ScanTypeCheckOut = "check-out"
)

type ScanRequest struct {
	QRCode    string   `json:"qr_code"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.QRCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "qr_code",
			Message: "qr_code is required",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScanResult struct {
	Type            string             `json:"type"`
	Attendance      AttendanceResponse `json:"attendance"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
}

// ========================================
// LIST DTOs
// ========================================

type AttendanceFilter struct {
	UserID    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f *AttendanceFilter) Validate() error {
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

type AttendanceResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	UserName        *string  `json:"user_name,omitempty"`
	CheckIn         string   `json:"check_in"`
	CheckOut        *string  `json:"check_out,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	LocationID      *string  `json:"location_id,omitempty"`
	LocationName    *string  `json:"location_name,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
