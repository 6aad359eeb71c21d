package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/location"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

// Create implements location.LocationRepository.
func (r *locationRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := database.QuerierFromContext(ctx, r.db)

	if loc.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return location.Location{}, fmt.Errorf("failed to generate location id: %w", err)
		}
		loc.ID = id.String()
	}

	query := `
		INSERT INTO locations (id, name, address, latitude, longitude, radius_meters, active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.ID,
		loc.Name,
		loc.Address,
		loc.Latitude,
		loc.Longitude,
		loc.RadiusMeters,
		loc.Active,
		loc.CreatedBy,
	).Scan(&loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepository) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, active, created_by, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var loc location.Location
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Address, &loc.Latitude, &loc.Longitude,
		&loc.RadiusMeters, &loc.Active, &loc.CreatedBy, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

// List implements location.LocationRepository.
func (r *locationRepository) List(ctx context.Context) ([]location.Location, error) {
	return r.list(ctx, false)
}

// ListActive implements location.LocationRepository. Creation order matters:
// scan validation stops at the first containing fence.
func (r *locationRepository) ListActive(ctx context.Context) ([]location.Location, error) {
	return r.list(ctx, true)
}

func (r *locationRepository) list(ctx context.Context, activeOnly bool) ([]location.Location, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, name, address, latitude, longitude, radius_meters, active, created_by, created_at, updated_at
		FROM locations
	`
	if activeOnly {
		query += " WHERE active = true"
	}
	query += " ORDER BY created_at ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var loc location.Location
		if err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Address, &loc.Latitude, &loc.Longitude,
			&loc.RadiusMeters, &loc.Active, &loc.CreatedBy, &loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}

// Update implements location.LocationRepository.
func (r *locationRepository) Update(ctx context.Context, loc location.Location) (location.Location, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE locations
		SET name = $2, address = $3, latitude = $4, longitude = $5,
		    radius_meters = $6, active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.ID,
		loc.Name,
		loc.Address,
		loc.Latitude,
		loc.Longitude,
		loc.RadiusMeters,
		loc.Active,
	).Scan(&loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to update location: %w", err)
	}

	return loc, nil
}

// Delete implements location.LocationRepository.
func (r *locationRepository) Delete(ctx context.Context, id string) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM locations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
