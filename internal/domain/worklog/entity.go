package worklog

import "time"

// WorkLog is a self-reported unit of work on a given day. DurationMinutes is
// derived once at write time and only when EndTime is known.
type WorkLog struct {
	ID              string
	UserID          string
	Date            time.Time
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Description     string
	ProjectTag      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
