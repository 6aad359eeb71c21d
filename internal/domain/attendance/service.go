package attendance

import "context"

type AttendanceService interface {
	// Scan toggles the caller between checked-in and checked-out
	Scan(ctx context.Context, req ScanRequest) (ScanResult, error)

	// GetMyAttendance lists the caller's own records
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance lists records across users (manager/admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
