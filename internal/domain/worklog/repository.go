package worklog

import (
	"context"
	"time"
)

type WorkLogRepository interface {
	// Create inserts a new work log
	Create(ctx context.Context, log WorkLog) (WorkLog, error)

	// GetByID retrieves a work log by ID
	GetByID(ctx context.Context, id string) (WorkLog, error)

	// Update updates an existing work log
	Update(ctx context.Context, log WorkLog) (WorkLog, error)

	// ListByUser lists a user's logs, optionally filtered by date range
	ListByUser(ctx context.Context, userID string, filter WorkLogFilter) ([]WorkLog, error)

	// ListBetween returns a user's logs with date inside [from, to],
	// used by the KPI aggregation window
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]WorkLog, error)
}
