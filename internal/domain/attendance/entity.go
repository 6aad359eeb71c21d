package attendance

import (
	"time"
)

// Attendance is one check-in/check-out cycle for a user. A record with a nil
// CheckOut is the user's open session; at most one may exist per user.
type Attendance struct {
	ID             string
	UserID         string
	CheckIn        time.Time
	CheckOut       *time.Time
	QRTokenUsed    string
	LocationID     *string
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	CreatedAt      time.Time

	// DTO
	UserName     *string
	LocationName *string
}

// DurationMinutes returns the whole minutes between check-in and check-out,
// or nil while the session is still open.
func (a Attendance) DurationMinutes() *int {
	if a.CheckOut == nil {
		return nil
	}
	minutes := int(a.CheckOut.Sub(a.CheckIn).Minutes())
	return &minutes
}
