package message

import (
	"context"
	"time"
)

type MessageRepository interface {
	// GetByID retrieves a message by ID
	GetByID(ctx context.Context, id string) (Message, error)

	// UpsertResponse inserts or replaces the single response for
	// (message, user)
	UpsertResponse(ctx context.Context, resp MessageResponse) (MessageResponse, error)

	// ListResponses lists a user's responses, newest first
	ListResponses(ctx context.Context, userID string, filter ResponseFilter) ([]MessageResponse, error)

	// ListResponsesBetween returns a user's responses with responded_at
	// inside [from, to], used by the KPI aggregation window
	ListResponsesBetween(ctx context.Context, userID string, from, to time.Time) ([]MessageResponse, error)
}
