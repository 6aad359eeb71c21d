package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-backend-go/internal/domain/task"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
)

func authedContext(t *testing.T, userID, role string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeTaskRepo struct {
	tasks  []task.Task
	nextID int
}

func (f *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	f.nextID++
	t.ID = fmt.Sprintf("t-%d", f.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	for _, tk := range f.tasks {
		if tk.ID == id {
			return tk, nil
		}
	}
	return task.Task{}, task.ErrTaskNotFound
}

func (f *fakeTaskRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	for i, existing := range f.tasks {
		if existing.ID == t.ID {
			t.UpdatedAt = time.Now()
			f.tasks[i] = t
			return t, nil
		}
	}
	return task.Task{}, task.ErrTaskNotFound
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID string, filter task.TaskFilter) ([]task.Task, error) {
	var out []task.Task
	for _, tk := range f.tasks {
		if tk.UserID != userID {
			continue
		}
		if filter.Status != nil && string(tk.Status) != *filter.Status {
			continue
		}
		out = append(out, tk)
	}
	return out, nil
}

func (f *fakeTaskRepo) ListCreatedBetween(ctx context.Context, userID string, from, to time.Time) ([]task.Task, error) {
	return nil, nil
}

func TestCreate_RequiresManager(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(&fakeTaskRepo{})

	_, err := svc.Create(authedContext(t, "u1", "employee"), task.CreateTaskRequest{
		UserID: "u1",
		Title:  "write report",
	})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestCreate_StampsAssigner(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(&fakeTaskRepo{})

	result, err := svc.Create(authedContext(t, "mgr", "manager"), task.CreateTaskRequest{
		UserID: "u1",
		Title:  "write report",
	})
	require.NoError(t, err)
	assert.Equal(t, string(task.StatusPending), result.Status)
	require.NotNil(t, result.AssignedBy)
	assert.Equal(t, "mgr", *result.AssignedBy)
}

func TestUpdateStatus_StartedAtStampedOnce(t *testing.T) {
	t.Parallel()

	repo := &fakeTaskRepo{}
	svc := NewTaskService(repo)
	ctx := authedContext(t, "u1", "employee")

	created, err := svc.Create(authedContext(t, "mgr", "manager"), task.CreateTaskRequest{
		UserID: "u1",
		Title:  "write report",
	})
	require.NoError(t, err)

	started, err := svc.UpdateStatus(ctx, task.UpdateStatusRequest{ID: created.ID, Status: "in_progress"})
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)

	// Bounce to pending and back; the original start time survives.
	_, err = svc.UpdateStatus(ctx, task.UpdateStatusRequest{ID: created.ID, Status: "pending"})
	require.NoError(t, err)

	restarted, err := svc.UpdateStatus(ctx, task.UpdateStatusRequest{ID: created.ID, Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, *started.StartedAt, *restarted.StartedAt)
}

func TestUpdateStatus_CompletionDerivesDuration(t *testing.T) {
	t.Parallel()

	startedAt := time.Now().UTC().Add(-90 * time.Minute)
	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "t-1", UserID: "u1", Title: "report", Status: task.StatusInProgress, StartedAt: &startedAt},
	}}
	svc := NewTaskService(repo)

	result, err := svc.UpdateStatus(authedContext(t, "u1", "employee"), task.UpdateStatusRequest{
		ID:     "t-1",
		Status: "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, result.CompletedAt)
	require.NotNil(t, result.DurationMinutes)
	assert.Equal(t, 90, *result.DurationMinutes)
}

func TestUpdateStatus_CompletionWithoutStartHasNoDuration(t *testing.T) {
	t.Parallel()

	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "t-1", UserID: "u1", Title: "report", Status: task.StatusPending},
	}}
	svc := NewTaskService(repo)

	result, err := svc.UpdateStatus(authedContext(t, "u1", "employee"), task.UpdateStatusRequest{
		ID:     "t-1",
		Status: "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, result.CompletedAt)
	assert.Nil(t, result.DurationMinutes)
}

func TestUpdateStatus_TerminalTaskRejectsTransitions(t *testing.T) {
	t.Parallel()

	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "t-1", UserID: "u1", Title: "done", Status: task.StatusCompleted},
		{ID: "t-2", UserID: "u1", Title: "dropped", Status: task.StatusCancelled},
	}}
	svc := NewTaskService(repo)
	ctx := authedContext(t, "u1", "employee")

	_, err := svc.UpdateStatus(ctx, task.UpdateStatusRequest{ID: "t-1", Status: "in_progress"})
	assert.ErrorIs(t, err, task.ErrTaskAlreadyClosed)

	_, err = svc.UpdateStatus(ctx, task.UpdateStatusRequest{ID: "t-2", Status: "pending"})
	assert.ErrorIs(t, err, task.ErrTaskAlreadyClosed)
}

func TestUpdateStatus_OtherUsersTaskHidden(t *testing.T) {
	t.Parallel()

	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "t-1", UserID: "u2", Title: "not yours", Status: task.StatusPending},
	}}
	svc := NewTaskService(repo)

	_, err := svc.UpdateStatus(authedContext(t, "u1", "employee"), task.UpdateStatusRequest{
		ID:     "t-1",
		Status: "in_progress",
	})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	// A manager may move anyone's task.
	_, err = svc.UpdateStatus(authedContext(t, "mgr", "manager"), task.UpdateStatusRequest{
		ID:     "t-1",
		Status: "in_progress",
	})
	assert.NoError(t, err)
}

func TestList_OtherUserRequiresManager(t *testing.T) {
	t.Parallel()

	repo := &fakeTaskRepo{tasks: []task.Task{
		{ID: "t-1", UserID: "u2", Title: "theirs", Status: task.StatusPending},
	}}
	svc := NewTaskService(repo)

	other := "u2"
	_, err := svc.List(authedContext(t, "u1", "employee"), task.TaskFilter{UserID: &other})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	tasks, err := svc.List(authedContext(t, "mgr", "manager"), task.TaskFilter{UserID: &other})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
