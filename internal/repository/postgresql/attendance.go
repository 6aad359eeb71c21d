package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository. A partial unique index
// on (user_id) WHERE check_out IS NULL backs the one-open-session invariant;
// the service serializes scans, the index is the backstop.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := database.QuerierFromContext(ctx, r.db)

	if att.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		att.ID = id.String()
	}

	query := `
		INSERT INTO attendances (
			id, user_id, check_in, qr_token_used,
			location_id, latitude, longitude, distance_meters
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.CheckIn,
		att.QRTokenUsed,
		att.LocationID,
		att.Latitude,
		att.Longitude,
		att.DistanceMeters,
	).Scan(&att.CreatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetOpenSession implements attendance.AttendanceRepository. FOR UPDATE
// holds the open row until the surrounding transaction ends, so two scans
// by the same user cannot both act on it.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, userID string) (attendance.Attendance, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, check_in, check_out, qr_token_used,
		       location_id, latitude, longitude, distance_meters, created_at
		FROM attendances
		WHERE user_id = $1
		  AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
		FOR UPDATE
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID).Scan(
		&att.ID, &att.UserID, &att.CheckIn, &att.CheckOut, &att.QRTokenUsed,
		&att.LocationID, &att.Latitude, &att.Longitude, &att.DistanceMeters, &att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenSession
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// Close implements attendance.AttendanceRepository.
func (r *attendanceRepository) Close(ctx context.Context, id string, checkOut time.Time) (attendance.Attendance, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $2
		WHERE id = $1
		  AND check_out IS NULL
		RETURNING id, user_id, check_in, check_out, qr_token_used,
		          location_id, latitude, longitude, distance_meters, created_at
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, checkOut).Scan(
		&att.ID, &att.UserID, &att.CheckIn, &att.CheckOut, &att.QRTokenUsed,
		&att.LocationID, &att.Latitude, &att.Longitude, &att.DistanceMeters, &att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	return att, nil
}

// ListBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, check_in, check_out, qr_token_used,
		       location_id, latitude, longitude, distance_meters, created_at
		FROM attendances
		WHERE user_id = $1
		  AND check_in >= $2
		  AND check_in <= $3
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances between: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.check_in >= $%d::date", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.check_in < $%d::date + interval '1 day'", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.check_in, a.check_out, a.qr_token_used,
		       a.location_id, a.latitude, a.longitude, a.distance_meters, a.created_at,
		       u.full_name, l.name
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE %s
		ORDER BY a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.CheckIn, &att.CheckOut, &att.QRTokenUsed,
			&att.LocationID, &att.Latitude, &att.Longitude, &att.DistanceMeters, &att.CreatedAt,
			&att.UserName, &att.LocationName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

func scanAttendanceRows(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.CheckIn, &att.CheckOut, &att.QRTokenUsed,
			&att.LocationID, &att.Latitude, &att.Longitude, &att.DistanceMeters, &att.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}
