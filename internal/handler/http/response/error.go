package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/kpi"
	"github.com/workpulse/attendance-backend-go/internal/domain/location"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
	"github.com/workpulse/attendance-backend-go/internal/domain/task"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Scan rejections outside every fence carry the nearest fence and
	// distance for the client to display.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), map[string]string{
			"nearest_location": outOfRange.NearestName,
			"distance_meters":  fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
		})
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidQRCode):
		Forbidden(w, "QR code is invalid or does not belong to you")
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location is required to check in at this workplace", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager or admin access required")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrNameExists):
		Conflict(w, "Location name already exists")

	// Work log domain errors
	case errors.Is(err, worklog.ErrWorkLogNotFound):
		NotFound(w, "Work log not found")
	case errors.Is(err, worklog.ErrNotOwner):
		Forbidden(w, "Work log belongs to another user")

	// Message domain errors
	case errors.Is(err, message.ErrMessageNotFound):
		NotFound(w, "Message not found")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrInvalidStatus):
		BadRequest(w, "Invalid task status", nil)
	case errors.Is(err, task.ErrTaskAlreadyClosed):
		Conflict(w, "Task is already completed or cancelled")

	// KPI domain errors
	case errors.Is(err, kpi.ErrInvalidScore):
		BadRequest(w, "Overall score must be between 0 and 100", nil)
	case errors.Is(err, kpi.ErrMetricNotFound):
		NotFound(w, "KPI metric not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
