package worklog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
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

type fakeWorkLogRepo struct {
	logs   []worklog.WorkLog
	nextID int
}

func (f *fakeWorkLogRepo) Create(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	f.nextID++
	log.ID = fmt.Sprintf("wl-%d", f.nextID)
	log.CreatedAt = time.Now()
	log.UpdatedAt = log.CreatedAt
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeWorkLogRepo) GetByID(ctx context.Context, id string) (worklog.WorkLog, error) {
	for _, log := range f.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
}

func (f *fakeWorkLogRepo) Update(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	for i, existing := range f.logs {
		if existing.ID == log.ID {
			log.UpdatedAt = time.Now()
			f.logs[i] = log
			return log, nil
		}
	}
	return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
}

func (f *fakeWorkLogRepo) ListByUser(ctx context.Context, userID string, filter worklog.WorkLogFilter) ([]worklog.WorkLog, error) {
	var out []worklog.WorkLog
	for _, log := range f.logs {
		if log.UserID == userID {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeWorkLogRepo) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkLog, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }

func TestCreate_DerivesDuration(t *testing.T) {
	t.Parallel()

	repo := &fakeWorkLogRepo{}
	svc := NewWorkLogService(repo)

	result, err := svc.Create(authedContext(t, "u1"), worklog.CreateWorkLogRequest{
		Date:        "2025-06-02",
		StartTime:   "09:00",
		EndTime:     strPtr("09:30"),
		Description: "standup notes",
	})
	require.NoError(t, err)
	require.NotNil(t, result.DurationMinutes)
	assert.Equal(t, 30, *result.DurationMinutes)
	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, "2025-06-02", result.Date)
}

func TestCreate_OpenEndedHasNoDuration(t *testing.T) {
	t.Parallel()

	svc := NewWorkLogService(&fakeWorkLogRepo{})

	result, err := svc.Create(authedContext(t, "u1"), worklog.CreateWorkLogRequest{
		Date:        "2025-06-02",
		StartTime:   "09:00",
		Description: "started deep work",
	})
	require.NoError(t, err)
	assert.Nil(t, result.DurationMinutes)
	assert.Nil(t, result.EndTime)
}

func TestCreate_EndBeforeStartRejected(t *testing.T) {
	t.Parallel()

	svc := NewWorkLogService(&fakeWorkLogRepo{})

	_, err := svc.Create(authedContext(t, "u1"), worklog.CreateWorkLogRequest{
		Date:        "2025-06-02",
		StartTime:   "10:00",
		EndTime:     strPtr("09:00"),
		Description: "time travel",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestUpdate_SetsEndAndRecomputesDuration(t *testing.T) {
	t.Parallel()

	repo := &fakeWorkLogRepo{}
	svc := NewWorkLogService(repo)
	ctx := authedContext(t, "u1")

	created, err := svc.Create(ctx, worklog.CreateWorkLogRequest{
		Date:        "2025-06-02",
		StartTime:   "09:00",
		Description: "review",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, worklog.UpdateWorkLogRequest{
		ID:      created.ID,
		EndTime: strPtr("10:15"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 75, *updated.DurationMinutes)
}

func TestUpdate_OtherUsersLogRejected(t *testing.T) {
	t.Parallel()

	repo := &fakeWorkLogRepo{}
	svc := NewWorkLogService(repo)

	created, err := svc.Create(authedContext(t, "u1"), worklog.CreateWorkLogRequest{
		Date:        "2025-06-02",
		StartTime:   "09:00",
		Description: "mine",
	})
	require.NoError(t, err)

	_, err = svc.Update(authedContext(t, "u2"), worklog.UpdateWorkLogRequest{
		ID:          created.ID,
		Description: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, worklog.ErrNotOwner)
}

func TestListMy_ScopedToCaller(t *testing.T) {
	t.Parallel()

	repo := &fakeWorkLogRepo{}
	svc := NewWorkLogService(repo)

	_, err := svc.Create(authedContext(t, "u1"), worklog.CreateWorkLogRequest{
		Date: "2025-06-02", StartTime: "09:00", Description: "a",
	})
	require.NoError(t, err)
	_, err = svc.Create(authedContext(t, "u2"), worklog.CreateWorkLogRequest{
		Date: "2025-06-02", StartTime: "09:00", Description: "b",
	})
	require.NoError(t, err)

	logs, err := svc.ListMy(authedContext(t, "u1"), worklog.WorkLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "u1", logs[0].UserID)
}
