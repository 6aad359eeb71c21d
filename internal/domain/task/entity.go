package task

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Task is an assigned unit of work. StartedAt is stamped once, on the first
// transition into in_progress; CompletedAt once, on the first transition into
// completed. DurationMinutes is derived only when StartedAt was present at
// completion time.
type Task struct {
	ID              string
	UserID          string
	Title           string
	Description     *string
	Status          Status
	AssignedBy      *string
	LocationID      *string
	DueDate         *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	DurationMinutes *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
