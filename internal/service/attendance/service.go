package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/location"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/pkg/geo"
	locationService "github.com/workpulse/attendance-backend-go/internal/service/location"
)

// TxRunner executes fn atomically. Backed by a database transaction in
// production; scans must serialize the read-open-record-then-act step per
// user so concurrent scans cannot double check-in or double check-out.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AttendanceServiceImpl struct {
	tx TxRunner
	attendance.AttendanceRepository
	location.LocationRepository
	user.UserRepository
}

func NewAttendanceService(
	tx TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	locationRepo location.LocationRepository,
	userRepo user.UserRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		LocationRepository:   locationRepo,
		UserRepository:       userRepo,
	}
}

// Scan implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResult{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.ScanResult{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return attendance.ScanResult{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	owner, err := a.UserRepository.GetByQRToken(ctx, req.QRCode)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.ScanResult{}, attendance.ErrInvalidQRCode
		}
		return attendance.ScanResult{}, fmt.Errorf("failed to resolve qr token: %w", err)
	}
	if owner.ID != callerID {
		return attendance.ScanResult{}, attendance.ErrInvalidQRCode
	}

	fences, err := a.LocationRepository.ListActive(ctx)
	if err != nil {
		return attendance.ScanResult{}, fmt.Errorf("failed to list active locations: %w", err)
	}

	var locationID *string
	var distanceMeters *float64

	if len(fences) > 0 {
		// Geofencing is enforced once at least one fence is registered.
		if req.Latitude == nil || req.Longitude == nil {
			return attendance.ScanResult{}, attendance.ErrLocationRequired
		}

		point := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
		match := locationService.FindContainingFence(point, fences)
		if match == nil {
			nearest := locationService.NearestFence(point, fences)
			return attendance.ScanResult{}, &attendance.OutOfRangeError{
				NearestName:    nearest.Location.Name,
				DistanceMeters: nearest.DistanceMeters,
			}
		}

		locationID = &match.Location.ID
		distanceMeters = &match.DistanceMeters
	}

	now := time.Now().UTC()
	var result attendance.ScanResult

	// Read-open-record and act must be one atomic step per user; the open
	// row is locked for the duration of the transaction.
	err = a.tx.RunInTx(ctx, func(txCtx context.Context) error {
		open, err := a.AttendanceRepository.GetOpenSession(txCtx, callerID)
		if err != nil {
			if !errors.Is(err, attendance.ErrNoOpenSession) {
				return fmt.Errorf("failed to get open session: %w", err)
			}

			// No open record: check in.
			data := attendance.Attendance{
				UserID:         callerID,
				CheckIn:        now,
				QRTokenUsed:    req.QRCode,
				LocationID:     locationID,
				Latitude:       req.Latitude,
				Longitude:      req.Longitude,
				DistanceMeters: distanceMeters,
			}

			created, err := a.AttendanceRepository.Create(txCtx, data)
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}

			result = attendance.ScanResult{
				Type:       attendance.ScanTypeCheckIn,
				Attendance: mapAttendanceToResponse(created),
			}
			return nil
		}

		// Open record exists: check out.
		closed, err := a.AttendanceRepository.Close(txCtx, open.ID, now)
		if err != nil {
			return fmt.Errorf("failed to close attendance record: %w", err)
		}

		durationMinutes := int(math.Floor(now.Sub(open.CheckIn).Minutes()))
		result = attendance.ScanResult{
			Type:            attendance.ScanTypeCheckOut,
			Attendance:      mapAttendanceToResponse(closed),
			DurationMinutes: &durationMinutes,
		}
		return nil
	})
	if err != nil {
		return attendance.ScanResult{}, err
	}

	return result, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	filter.UserID = &userID
	return a.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:              att.ID,
		UserID:          att.UserID,
		UserName:        att.UserName,
		CheckIn:         att.CheckIn.Format(time.RFC3339),
		CheckOut:        timePtrToString(att.CheckOut),
		DurationMinutes: att.DurationMinutes(),
		LocationID:      att.LocationID,
		LocationName:    att.LocationName,
		Latitude:        att.Latitude,
		Longitude:       att.Longitude,
		DistanceMeters:  att.DistanceMeters,
	}
}
