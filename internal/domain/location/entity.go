package location

import (
	"time"

	"github.com/workpulse/attendance-backend-go/internal/pkg/geo"
)

// Location is a named circular geofence used to validate physical presence.
type Location struct {
	ID           string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Active       bool
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (l Location) Center() geo.Point {
	return geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Contains reports whether the point falls inside the fence radius.
func (l Location) Contains(p geo.Point) bool {
	return geo.DistanceMeters(p, l.Center()) <= l.RadiusMeters
}
