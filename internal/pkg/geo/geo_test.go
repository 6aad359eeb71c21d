package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	p := Point{Latitude: 41.0082, Longitude: 28.9784}
	assert.Equal(t, 0.0, DistanceMeters(p, p))
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	t.Parallel()

	points := []struct {
		a, b Point
	}{
		{Point{41.0082, 28.9784}, Point{39.9334, 32.8597}},
		{Point{0, 0}, Point{0, 0.0005}},
		{Point{-33.8688, 151.2093}, Point{51.5074, -0.1278}},
	}

	for _, tc := range points {
		assert.InDelta(t, DistanceMeters(tc.a, tc.b), DistanceMeters(tc.b, tc.a), 1e-9)
	}
}

func TestDistanceMeters_KnownDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     Point
		expected float64
		delta    float64
	}{
		{
			// One degree of latitude is roughly 111.2 km.
			name:     "one degree latitude at equator",
			a:        Point{0, 0},
			b:        Point{1, 0},
			expected: 111195,
			delta:    100,
		},
		{
			name:     "small offset near equator",
			a:        Point{0, 0},
			b:        Point{0, 0.0005},
			expected: 55.6,
			delta:    0.5,
		},
		{
			name:     "istanbul to ankara",
			a:        Point{41.0082, 28.9784},
			b:        Point{39.9334, 32.8597},
			expected: 349000,
			delta:    5000,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.expected, DistanceMeters(tc.a, tc.b), tc.delta)
		})
	}
}

func TestDistanceMeters_NaNPropagates(t *testing.T) {
	t.Parallel()

	d := DistanceMeters(Point{math.NaN(), 0}, Point{0, 0})
	assert.True(t, math.IsNaN(d))
}
