package location

import (
	"github.com/workpulse/attendance-backend-go/internal/domain/location"
	"github.com/workpulse/attendance-backend-go/internal/pkg/geo"
)

// Match pairs a fence with the computed distance to its center.
type Match struct {
	Location       location.Location
	DistanceMeters float64
}

// FindContainingFence returns the first fence, in the given order, whose
// radius contains the point. First match wins even if a later fence is
// closer; callers control the ordering. Returns nil when no fence contains
// the point (including an empty fence set, which means geofencing is not
// enforced).
func FindContainingFence(p geo.Point, fences []location.Location) *Match {
	for _, fence := range fences {
		distance := geo.DistanceMeters(p, fence.Center())
		if distance <= fence.RadiusMeters {
			return &Match{Location: fence, DistanceMeters: distance}
		}
	}
	return nil
}

// NearestFence returns the fence with the minimum center distance,
// regardless of containment. Used only for rejection diagnostics. Returns
// nil for an empty fence set.
func NearestFence(p geo.Point, fences []location.Location) *Match {
	var nearest *Match
	for _, fence := range fences {
		distance := geo.DistanceMeters(p, fence.Center())
		if nearest == nil || distance < nearest.DistanceMeters {
			nearest = &Match{Location: fence, DistanceMeters: distance}
		}
	}
	return nearest
}
