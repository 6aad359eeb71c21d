package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, full_name, role, qr_token, active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FullName, &u.Role, &u.QRToken, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByQRToken implements user.UserRepository.
func (r *userRepository) GetByQRToken(ctx context.Context, token string) (user.User, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, full_name, role, qr_token, active, created_at, updated_at
		FROM users
		WHERE qr_token = $1
		  AND active = true
	`

	var u user.User
	err := q.QueryRow(ctx, query, token).Scan(
		&u.ID, &u.FullName, &u.Role, &u.QRToken, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by qr token: %w", err)
	}

	return u, nil
}

// UpdateQRToken implements user.UserRepository.
func (r *userRepository) UpdateQRToken(ctx context.Context, id string, token string) (user.User, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE users
		SET qr_token = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, full_name, role, qr_token, active, created_at, updated_at
	`

	var u user.User
	err := q.QueryRow(ctx, query, id, token).Scan(
		&u.ID, &u.FullName, &u.Role, &u.QRToken, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update qr token: %w", err)
	}

	return u, nil
}

// ListActive implements user.UserRepository.
func (r *userRepository) ListActive(ctx context.Context) ([]user.User, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, full_name, role, qr_token, active, created_at, updated_at
		FROM users
		WHERE active = true
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Role, &u.QRToken, &u.Active, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
