package location

import "context"

type LocationRepository interface {
	// Create creates a new geofence location
	Create(ctx context.Context, loc Location) (Location, error)

	// GetByID retrieves a location by ID
	GetByID(ctx context.Context, id string) (Location, error)

	// List retrieves all locations, active and inactive
	List(ctx context.Context) ([]Location, error)

	// ListActive retrieves active fences in creation order.
	// Scan validation iterates this order: first containing fence wins.
	ListActive(ctx context.Context) ([]Location, error)

	// Update updates an existing location
	Update(ctx context.Context, loc Location) (Location, error)

	// Delete removes a location
	Delete(ctx context.Context, id string) error
}
