package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new check-in record (check_out null)
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetOpenSession returns the user's open record (check_out null).
	// Inside a transaction the row is locked so concurrent scans serialize
	// per user.
	GetOpenSession(ctx context.Context, userID string) (Attendance, error)

	// Close stamps check_out on an open record
	Close(ctx context.Context, id string, checkOut time.Time) (Attendance, error)

	// ListBetween returns a user's records with check_in inside [from, to],
	// used by the KPI aggregation window
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
