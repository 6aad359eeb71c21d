package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrInvalidQRCode      = errors.New("qr code is invalid or does not belong to you")
	ErrLocationRequired   = errors.New("location is required to check in at this workplace")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNoOpenSession      = errors.New("no open attendance session")
)

// OutOfRangeError rejects a scan taken outside every registered geofence.
// It carries the nearest fence so callers can tell the user how far off they are.
type OutOfRangeError struct {
	NearestName    string
	DistanceMeters float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are outside the allowed radius: %.0fm from %s", e.DistanceMeters, e.NearestName)
}
