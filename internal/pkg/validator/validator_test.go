package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("018f7d6e-1c3a-7b4e-9a2f-3b5c8d9e0f1a"))
	assert.True(t, IsValidUUID("018F7D6E-1C3A-7B4E-9A2F-3B5C8D9E0F1A"))
	// Wrong version nibble
	assert.False(t, IsValidUUID("018f7d6e-1c3a-4b4e-9a2f-3b5c8d9e0f1a"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	_, ok := IsValidDate("2024-06-15")
	assert.True(t, ok)

	_, ok = IsValidDate("2024-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("15/06/2024")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	t.Parallel()

	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15 10:30:00")
	assert.False(t, ok)
}

func TestIsValidClockTime(t *testing.T) {
	t.Parallel()

	_, ok := IsValidClockTime("09:30")
	assert.True(t, ok)

	_, ok = IsValidClockTime("09:30:15")
	assert.True(t, ok)

	_, ok = IsValidClockTime("25:00")
	assert.False(t, ok)
}

func TestCoordinateBounds(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidLatitude(41.0082))
	assert.True(t, IsValidLatitude(-90))
	assert.False(t, IsValidLatitude(90.1))

	assert.True(t, IsValidLongitude(28.9784))
	assert.True(t, IsValidLongitude(180))
	assert.False(t, IsValidLongitude(-180.5))
}

func TestIsValidMonth(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
}
