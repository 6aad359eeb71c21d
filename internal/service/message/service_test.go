package message

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeMessageRepo struct {
	messages  []message.Message
	responses map[string]message.MessageResponse
}

func newFakeMessageRepo(messages ...message.Message) *fakeMessageRepo {
	return &fakeMessageRepo{
		messages:  messages,
		responses: make(map[string]message.MessageResponse),
	}
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (message.Message, error) {
	for _, msg := range f.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return message.Message{}, message.ErrMessageNotFound
}

func (f *fakeMessageRepo) UpsertResponse(ctx context.Context, resp message.MessageResponse) (message.MessageResponse, error) {
	key := resp.MessageID + "/" + resp.UserID
	if existing, ok := f.responses[key]; ok {
		existing.RespondedAt = resp.RespondedAt
		existing.ResponseTimeSeconds = resp.ResponseTimeSeconds
		f.responses[key] = existing
		return existing, nil
	}
	resp.CreatedAt = time.Now()
	f.responses[key] = resp
	return resp, nil
}

func (f *fakeMessageRepo) ListResponses(ctx context.Context, userID string, filter message.ResponseFilter) ([]message.MessageResponse, error) {
	var out []message.MessageResponse
	for _, resp := range f.responses {
		if resp.UserID == userID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListResponsesBetween(ctx context.Context, userID string, from, to time.Time) ([]message.MessageResponse, error) {
	return nil, nil
}

func TestRecordResponse_DerivesWholeSeconds(t *testing.T) {
	t.Parallel()

	repo := newFakeMessageRepo(message.Message{
		ID:         "m1",
		UserID:     "u1",
		Platform:   message.PlatformSlack,
		ReceivedAt: time.Now().UTC().Add(-90*time.Second - 700*time.Millisecond),
	})
	svc := NewMessageService(repo)

	result, err := svc.RecordResponse(authedContext(t, "u1"), message.RecordResponseRequest{MessageID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, "m1", result.MessageID)
	assert.Equal(t, 90, result.ResponseTimeSeconds)
}

func TestRecordResponse_OtherUsersMessageHidden(t *testing.T) {
	t.Parallel()

	repo := newFakeMessageRepo(message.Message{
		ID:         "m1",
		UserID:     "u2",
		ReceivedAt: time.Now().UTC(),
	})
	svc := NewMessageService(repo)

	_, err := svc.RecordResponse(authedContext(t, "u1"), message.RecordResponseRequest{MessageID: "m1"})
	assert.ErrorIs(t, err, message.ErrMessageNotFound)
}

func TestRecordResponse_UnknownMessage(t *testing.T) {
	t.Parallel()

	svc := NewMessageService(newFakeMessageRepo())

	_, err := svc.RecordResponse(authedContext(t, "u1"), message.RecordResponseRequest{MessageID: "nope"})
	assert.ErrorIs(t, err, message.ErrMessageNotFound)
}

func TestRecordResponse_ReRecordingReplaces(t *testing.T) {
	t.Parallel()

	repo := newFakeMessageRepo(message.Message{
		ID:         "m1",
		UserID:     "u1",
		ReceivedAt: time.Now().UTC().Add(-time.Minute),
	})
	svc := NewMessageService(repo)
	ctx := authedContext(t, "u1")

	_, err := svc.RecordResponse(ctx, message.RecordResponseRequest{MessageID: "m1"})
	require.NoError(t, err)

	_, err = svc.RecordResponse(ctx, message.RecordResponseRequest{MessageID: "m1"})
	require.NoError(t, err)

	assert.Len(t, repo.responses, 1)
}

func TestListMyResponses_ScopedToCaller(t *testing.T) {
	t.Parallel()

	repo := newFakeMessageRepo(
		message.Message{ID: "m1", UserID: "u1", ReceivedAt: time.Now().UTC().Add(-time.Minute)},
		message.Message{ID: "m2", UserID: "u2", ReceivedAt: time.Now().UTC().Add(-time.Minute)},
	)
	svc := NewMessageService(repo)

	_, err := svc.RecordResponse(authedContext(t, "u1"), message.RecordResponseRequest{MessageID: "m1"})
	require.NoError(t, err)
	_, err = svc.RecordResponse(authedContext(t, "u2"), message.RecordResponseRequest{MessageID: "m2"})
	require.NoError(t, err)

	responses, err := svc.ListMyResponses(authedContext(t, "u1"), message.ResponseFilter{})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "u1", responses[0].UserID)
}
