package message

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
)

type MessageServiceImpl struct {
	message.MessageRepository
}

func NewMessageService(messageRepo message.MessageRepository) message.MessageService {
	return &MessageServiceImpl{
		MessageRepository: messageRepo,
	}
}

// RecordResponse implements message.MessageService. Response time is the
// whole-second span between the message arriving and the caller answering;
// re-recording replaces the previous stamp for the same message.
func (s *MessageServiceImpl) RecordResponse(ctx context.Context, req message.RecordResponseRequest) (message.ResponseResponse, error) {
	if err := req.Validate(); err != nil {
		return message.ResponseResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return message.ResponseResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return message.ResponseResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	msg, err := s.MessageRepository.GetByID(ctx, req.MessageID)
	if err != nil {
		return message.ResponseResponse{}, err
	}

	// A response only counts against the message's addressee.
	if msg.UserID != userID {
		return message.ResponseResponse{}, message.ErrMessageNotFound
	}

	now := time.Now().UTC()
	seconds := int(now.Sub(msg.ReceivedAt).Seconds())
	if seconds < 0 {
		seconds = 0
	}

	resp := message.MessageResponse{
		MessageID:           msg.ID,
		UserID:              userID,
		RespondedAt:         now,
		ResponseTimeSeconds: seconds,
	}

	stored, err := s.MessageRepository.UpsertResponse(ctx, resp)
	if err != nil {
		return message.ResponseResponse{}, fmt.Errorf("failed to upsert message response: %w", err)
	}

	return mapResponseToResponse(stored), nil
}

// ListMyResponses implements message.MessageService.
func (s *MessageServiceImpl) ListMyResponses(ctx context.Context, filter message.ResponseFilter) ([]message.ResponseResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	responses, err := s.MessageRepository.ListResponses(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list message responses: %w", err)
	}

	out := make([]message.ResponseResponse, 0, len(responses))
	for _, resp := range responses {
		out = append(out, mapResponseToResponse(resp))
	}

	return out, nil
}

func mapResponseToResponse(resp message.MessageResponse) message.ResponseResponse {
	return message.ResponseResponse{
		ID:                  resp.ID,
		MessageID:           resp.MessageID,
		UserID:              resp.UserID,
		RespondedAt:         resp.RespondedAt.Format(time.RFC3339),
		ResponseTimeSeconds: resp.ResponseTimeSeconds,
	}
}
