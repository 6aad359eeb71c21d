package user

import "context"

type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByQRToken resolves a QR token to its owner.
	// Backs the ownership check on attendance scans.
	GetByQRToken(ctx context.Context, token string) (User, error)

	// UpdateQRToken replaces a user's QR token
	UpdateQRToken(ctx context.Context, id string, token string) (User, error)

	// ListActive lists active users, used by the monthly KPI recompute job
	ListActive(ctx context.Context) ([]User, error)
}
