package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
)

type messageRepository struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) message.MessageRepository {
	return &messageRepository{db: db}
}

// GetByID implements message.MessageRepository.
func (r *messageRepository) GetByID(ctx context.Context, id string) (message.Message, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, user_id, platform, external_id, channel_id,
		       sender_name, content, received_at, created_at
		FROM messages
		WHERE id = $1
	`

	var msg message.Message
	err := q.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.UserID, &msg.Platform, &msg.ExternalID, &msg.ChannelID,
		&msg.SenderName, &msg.Content, &msg.ReceivedAt, &msg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return message.Message{}, message.ErrMessageNotFound
		}
		return message.Message{}, fmt.Errorf("failed to get message: %w", err)
	}

	return msg, nil
}

// UpsertResponse implements message.MessageRepository. One response per
// (message, user); re-recording replaces the stamp and the derived seconds.
func (r *messageRepository) UpsertResponse(ctx context.Context, resp message.MessageResponse) (message.MessageResponse, error) {
	q := database.QuerierFromContext(ctx, r.db)

	if resp.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return message.MessageResponse{}, fmt.Errorf("failed to generate response id: %w", err)
		}
		resp.ID = id.String()
	}

	query := `
		INSERT INTO message_responses (id, message_id, user_id, responded_at, response_time_seconds)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (message_id, user_id)
		DO UPDATE SET responded_at = EXCLUDED.responded_at,
		              response_time_seconds = EXCLUDED.response_time_seconds
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		resp.ID,
		resp.MessageID,
		resp.UserID,
		resp.RespondedAt,
		resp.ResponseTimeSeconds,
	).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return message.MessageResponse{}, fmt.Errorf("failed to upsert message response: %w", err)
	}

	return resp, nil
}

// ListResponses implements message.MessageRepository.
func (r *messageRepository) ListResponses(ctx context.Context, userID string, filter message.ResponseFilter) ([]message.MessageResponse, error) {
	q := database.QuerierFromContext(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("responded_at >= $%d::date", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("responded_at < $%d::date + interval '1 day'", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT id, message_id, user_id, responded_at, response_time_seconds, created_at
		FROM message_responses
		WHERE %s
		ORDER BY responded_at DESC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list message responses: %w", err)
	}
	defer rows.Close()

	return scanResponseRows(rows)
}

// ListResponsesBetween implements message.MessageRepository.
func (r *messageRepository) ListResponsesBetween(ctx context.Context, userID string, from, to time.Time) ([]message.MessageResponse, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, message_id, user_id, responded_at, response_time_seconds, created_at
		FROM message_responses
		WHERE user_id = $1
		  AND responded_at >= $2
		  AND responded_at <= $3
		ORDER BY responded_at ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list message responses between: %w", err)
	}
	defer rows.Close()

	return scanResponseRows(rows)
}

func scanResponseRows(rows pgx.Rows) ([]message.MessageResponse, error) {
	var responses []message.MessageResponse
	for rows.Next() {
		var resp message.MessageResponse
		if err := rows.Scan(
			&resp.ID, &resp.MessageID, &resp.UserID,
			&resp.RespondedAt, &resp.ResponseTimeSeconds, &resp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message response: %w", err)
		}
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message responses: %w", err)
	}

	return responses, nil
}
