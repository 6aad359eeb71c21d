package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
	}
}

func callerIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// GetMe implements user.UserService.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.UserResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, callerID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetMyQRToken implements user.UserService.
func (s *UserServiceImpl) GetMyQRToken(ctx context.Context) (user.QRTokenResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return user.QRTokenResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, callerID)
	if err != nil {
		return user.QRTokenResponse{}, err
	}

	return user.QRTokenResponse{UserID: u.ID, QRToken: u.QRToken}, nil
}

// RegenerateQRToken implements user.UserService.
func (s *UserServiceImpl) RegenerateQRToken(ctx context.Context) (user.QRTokenResponse, error) {
	callerID, err := callerIDFromContext(ctx)
	if err != nil {
		return user.QRTokenResponse{}, err
	}

	token, err := uuid.NewV7()
	if err != nil {
		return user.QRTokenResponse{}, fmt.Errorf("failed to generate qr token: %w", err)
	}

	u, err := s.UserRepository.UpdateQRToken(ctx, callerID, token.String())
	if err != nil {
		return user.QRTokenResponse{}, fmt.Errorf("failed to rotate qr token: %w", err)
	}

	return user.QRTokenResponse{UserID: u.ID, QRToken: u.QRToken}, nil
}
