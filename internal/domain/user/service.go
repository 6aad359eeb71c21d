package user

import "context"

type UserService interface {
	// GetMe returns the caller's profile
	GetMe(ctx context.Context) (UserResponse, error)

	// GetMyQRToken returns the caller's current check-in token
	GetMyQRToken(ctx context.Context) (QRTokenResponse, error)

	// RegenerateQRToken rotates the caller's check-in token. The old token
	// stops resolving immediately.
	RegenerateQRToken(ctx context.Context) (QRTokenResponse, error)
}
