package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/location"
)

type LocationServiceImpl struct {
	location.LocationRepository
}

func NewLocationService(locationRepo location.LocationRepository) location.LocationService {
	return &LocationServiceImpl{
		LocationRepository: locationRepo,
	}
}

// Create implements location.LocationService.
func (s *LocationServiceImpl) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	createdBy, _ := claims["user_id"].(string)

	data := location.Location{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		Active:       true,
	}
	if createdBy != "" {
		data.CreatedBy = &createdBy
	}

	created, err := s.LocationRepository.Create(ctx, data)
	if err != nil {
		if errors.Is(err, location.ErrNameExists) {
			return location.LocationResponse{}, location.ErrNameExists
		}
		return location.LocationResponse{}, fmt.Errorf("failed to create location: %w", err)
	}

	return mapLocationToResponse(created), nil
}

// Get implements location.LocationService.
func (s *LocationServiceImpl) Get(ctx context.Context, id string) (location.LocationResponse, error) {
	loc, err := s.LocationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return location.LocationResponse{}, location.ErrLocationNotFound
		}
		return location.LocationResponse{}, fmt.Errorf("failed to get location: %w", err)
	}

	return mapLocationToResponse(loc), nil
}

// List implements location.LocationService.
func (s *LocationServiceImpl) List(ctx context.Context) ([]location.LocationResponse, error) {
	locations, err := s.LocationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}

	return responses, nil
}

// Update implements location.LocationService.
func (s *LocationServiceImpl) Update(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc, err := s.LocationRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return location.LocationResponse{}, location.ErrLocationNotFound
		}
		return location.LocationResponse{}, fmt.Errorf("failed to get location: %w", err)
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = req.Address
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}
	if req.Active != nil {
		loc.Active = *req.Active
	}

	updated, err := s.LocationRepository.Update(ctx, loc)
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to update location: %w", err)
	}

	return mapLocationToResponse(updated), nil
}

// Delete implements location.LocationService.
func (s *LocationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.LocationRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return location.ErrLocationNotFound
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}

func mapLocationToResponse(loc location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Address:      loc.Address,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		Active:       loc.Active,
		CreatedAt:    loc.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    loc.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
