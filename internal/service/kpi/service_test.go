package kpi

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/kpi"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
	"github.com/workpulse/attendance-backend-go/internal/domain/task"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
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

type metricKey struct {
	userID string
	month  int
	year   int
}

type fakeKPIRepo struct {
	metrics     map[metricKey]kpi.Metric
	evaluations map[metricKey]kpi.Evaluation
}

func newFakeKPIRepo() *fakeKPIRepo {
	return &fakeKPIRepo{
		metrics:     make(map[metricKey]kpi.Metric),
		evaluations: make(map[metricKey]kpi.Evaluation),
	}
}

func (f *fakeKPIRepo) UpsertMetric(ctx context.Context, userID string, month, year int, result kpi.CalculationResult, targets kpi.Targets) (kpi.Metric, error) {
	key := metricKey{userID, month, year}

	m, ok := f.metrics[key]
	if !ok {
		m = kpi.Metric{
			ID:                        fmt.Sprintf("m-%s-%d-%d", userID, month, year),
			UserID:                    userID,
			Month:                     month,
			Year:                      year,
			WorkHoursTarget:           targets.WorkHours,
			ResponseTimeTargetSeconds: targets.ResponseTimeSeconds,
			TaskCompletionTarget:      targets.TaskCompletion,
			ProductivityTarget:        targets.Productivity,
			CreatedAt:                 time.Now(),
		}
	}

	m.WorkHoursTotal = result.WorkHoursTotal
	m.AvgResponseTimeSeconds = result.AvgResponseTimeSeconds
	m.TaskCompletionRate = result.TaskCompletionRate
	m.ProductivityScore = result.ProductivityScore
	m.UpdatedAt = time.Now()

	f.metrics[key] = m
	return m, nil
}

func (f *fakeKPIRepo) GetMetric(ctx context.Context, userID string, month, year int) (kpi.Metric, error) {
	m, ok := f.metrics[metricKey{userID, month, year}]
	if !ok {
		return kpi.Metric{}, kpi.ErrMetricNotFound
	}
	return m, nil
}

func (f *fakeKPIRepo) ListMetrics(ctx context.Context, filter kpi.MetricFilter) ([]kpi.Metric, error) {
	var out []kpi.Metric
	for _, m := range f.metrics {
		if filter.UserID != nil && m.UserID != *filter.UserID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeKPIRepo) UpsertEvaluation(ctx context.Context, eval kpi.Evaluation) (kpi.Evaluation, error) {
	key := metricKey{eval.UserID, eval.Month, eval.Year}

	existing, ok := f.evaluations[key]
	if ok {
		existing.MetricID = eval.MetricID
		existing.OverallScore = eval.OverallScore
		existing.Comments = eval.Comments
		f.evaluations[key] = existing
		return existing, nil
	}

	eval.ID = fmt.Sprintf("e-%s-%d-%d", eval.UserID, eval.Month, eval.Year)
	eval.CreatedAt = time.Now()
	f.evaluations[key] = eval
	return eval, nil
}

func (f *fakeKPIRepo) ListEvaluations(ctx context.Context, userID string, month, year *int) ([]kpi.Evaluation, error) {
	var out []kpi.Evaluation
	for _, e := range f.evaluations {
		if e.UserID != userID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, userID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrNoOpenSession
}

func (f *fakeAttendanceRepo) Close(ctx context.Context, id string, checkOut time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.UserID == userID && !rec.CheckIn.Before(from) && !rec.CheckIn.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

type fakeWorkLogRepo struct {
	logs []worklog.WorkLog
}

func (f *fakeWorkLogRepo) Create(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	return log, nil
}

func (f *fakeWorkLogRepo) GetByID(ctx context.Context, id string) (worklog.WorkLog, error) {
	return worklog.WorkLog{}, worklog.ErrWorkLogNotFound
}

func (f *fakeWorkLogRepo) Update(ctx context.Context, log worklog.WorkLog) (worklog.WorkLog, error) {
	return log, nil
}

func (f *fakeWorkLogRepo) ListByUser(ctx context.Context, userID string, filter worklog.WorkLogFilter) ([]worklog.WorkLog, error) {
	return nil, nil
}

func (f *fakeWorkLogRepo) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkLog, error) {
	var out []worklog.WorkLog
	for _, log := range f.logs {
		if log.UserID == userID && !log.Date.Before(from) && !log.Date.After(to) {
			out = append(out, log)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	responses []message.MessageResponse
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (message.Message, error) {
	return message.Message{}, message.ErrMessageNotFound
}

func (f *fakeMessageRepo) UpsertResponse(ctx context.Context, resp message.MessageResponse) (message.MessageResponse, error) {
	return resp, nil
}

func (f *fakeMessageRepo) ListResponses(ctx context.Context, userID string, filter message.ResponseFilter) ([]message.MessageResponse, error) {
	return nil, nil
}

func (f *fakeMessageRepo) ListResponsesBetween(ctx context.Context, userID string, from, to time.Time) ([]message.MessageResponse, error) {
	var out []message.MessageResponse
	for _, resp := range f.responses {
		if resp.UserID == userID && !resp.RespondedAt.Before(from) && !resp.RespondedAt.After(to) {
			out = append(out, resp)
		}
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks []task.Task
}

func (f *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	return t, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	return task.Task{}, task.ErrTaskNotFound
}

func (f *fakeTaskRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	return t, nil
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID string, filter task.TaskFilter) ([]task.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListCreatedBetween(ctx context.Context, userID string, from, to time.Time) ([]task.Task, error) {
	var out []task.Task
	for _, tk := range f.tasks {
		if tk.UserID == userID && !tk.CreatedAt.Before(from) && !tk.CreatedAt.After(to) {
			out = append(out, tk)
		}
	}
	return out, nil
}

var testTargets = kpi.Targets{
	WorkHours:           160,
	ResponseTimeSeconds: 3600,
	TaskCompletion:      80,
	Productivity:        70,
}

func newTestService(
	kpiRepo *fakeKPIRepo,
	attRepo *fakeAttendanceRepo,
	logRepo *fakeWorkLogRepo,
	msgRepo *fakeMessageRepo,
	taskRepo *fakeTaskRepo,
) kpi.KPIService {
	return NewKPIService(kpiRepo, attRepo, logRepo, msgRepo, taskRepo, testTargets)
}

func emptyService(kpiRepo *fakeKPIRepo) kpi.KPIService {
	return newTestService(kpiRepo, &fakeAttendanceRepo{}, &fakeWorkLogRepo{}, &fakeMessageRepo{}, &fakeTaskRepo{})
}

func inMonth(day, hour, min int) time.Time {
	return time.Date(2025, time.June, day, hour, min, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }

func TestCalculateForUser_WorkHours(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		// 30 minutes closed
		{UserID: "u1", CheckIn: inMonth(2, 9, 0), CheckOut: timePtr(inMonth(2, 9, 30))},
		// 15 minutes closed
		{UserID: "u1", CheckIn: inMonth(3, 9, 0), CheckOut: timePtr(inMonth(3, 9, 15))},
		// open session contributes nothing
		{UserID: "u1", CheckIn: inMonth(4, 9, 0)},
		// outside the month
		{UserID: "u1", CheckIn: time.Date(2025, time.May, 30, 9, 0, 0, 0, time.UTC), CheckOut: timePtr(time.Date(2025, time.May, 30, 17, 0, 0, 0, time.UTC))},
	}}
	svc := newTestService(newFakeKPIRepo(), attRepo, &fakeWorkLogRepo{}, &fakeMessageRepo{}, &fakeTaskRepo{})

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.75, result.WorkHoursTotal)
}

func TestCalculateForUser_AvgResponseTimeFloorsMean(t *testing.T) {
	t.Parallel()

	msgRepo := &fakeMessageRepo{responses: []message.MessageResponse{
		{UserID: "u1", RespondedAt: inMonth(2, 10, 0), ResponseTimeSeconds: 10},
		{UserID: "u1", RespondedAt: inMonth(3, 10, 0), ResponseTimeSeconds: 20},
		{UserID: "u1", RespondedAt: inMonth(4, 10, 0), ResponseTimeSeconds: 21},
	}}
	svc := newTestService(newFakeKPIRepo(), &fakeAttendanceRepo{}, &fakeWorkLogRepo{}, msgRepo, &fakeTaskRepo{})

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 17, result.AvgResponseTimeSeconds)
}

func TestCalculateForUser_NoResponsesYieldsZero(t *testing.T) {
	t.Parallel()

	svc := emptyService(newFakeKPIRepo())

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, result.AvgResponseTimeSeconds)
}

func TestCalculateForUser_TaskCompletionExcludesCancelled(t *testing.T) {
	t.Parallel()

	taskRepo := &fakeTaskRepo{tasks: []task.Task{
		{UserID: "u1", Status: task.StatusCompleted, CreatedAt: inMonth(2, 9, 0)},
		{UserID: "u1", Status: task.StatusCompleted, CreatedAt: inMonth(3, 9, 0)},
		{UserID: "u1", Status: task.StatusPending, CreatedAt: inMonth(4, 9, 0)},
		{UserID: "u1", Status: task.StatusCancelled, CreatedAt: inMonth(5, 9, 0)},
	}}
	svc := newTestService(newFakeKPIRepo(), &fakeAttendanceRepo{}, &fakeWorkLogRepo{}, &fakeMessageRepo{}, taskRepo)

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	// 2 completed of 3 non-cancelled
	assert.Equal(t, 66.67, result.TaskCompletionRate)
}

func TestCalculateForUser_NoTasksYieldsZeroRate(t *testing.T) {
	t.Parallel()

	svc := emptyService(newFakeKPIRepo())

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TaskCompletionRate)
}

func TestCalculateForUser_Productivity(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		// 2 hours of attendance
		{UserID: "u1", CheckIn: inMonth(2, 9, 0), CheckOut: timePtr(inMonth(2, 11, 0))},
	}}
	logRepo := &fakeWorkLogRepo{logs: []worklog.WorkLog{
		{UserID: "u1", Date: inMonth(2, 0, 0), DurationMinutes: intPtr(90)},
	}}
	svc := newTestService(newFakeKPIRepo(), attRepo, logRepo, &fakeMessageRepo{}, &fakeTaskRepo{})

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	// 90 logged / 120 attended
	assert.Equal(t, 75.0, result.ProductivityScore)
}

func TestCalculateForUser_ProductivityCappedAt100(t *testing.T) {
	t.Parallel()

	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{UserID: "u1", CheckIn: inMonth(2, 9, 0), CheckOut: timePtr(inMonth(2, 10, 0))},
	}}
	logRepo := &fakeWorkLogRepo{logs: []worklog.WorkLog{
		{UserID: "u1", Date: inMonth(2, 0, 0), DurationMinutes: intPtr(600)},
	}}
	svc := newTestService(newFakeKPIRepo(), attRepo, logRepo, &fakeMessageRepo{}, &fakeTaskRepo{})

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.ProductivityScore)
}

func TestCalculateForUser_ZeroAttendanceYieldsZeroProductivity(t *testing.T) {
	t.Parallel()

	logRepo := &fakeWorkLogRepo{logs: []worklog.WorkLog{
		{UserID: "u1", Date: inMonth(2, 0, 0), DurationMinutes: intPtr(90)},
	}}
	svc := newTestService(newFakeKPIRepo(), &fakeAttendanceRepo{}, logRepo, &fakeMessageRepo{}, &fakeTaskRepo{})

	result, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.ProductivityScore)
}

func TestCalculateForUser_RecomputationPreservesTargets(t *testing.T) {
	t.Parallel()

	kpiRepo := newFakeKPIRepo()
	svc := emptyService(kpiRepo)

	first, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)

	second, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 160.0, second.WorkHoursTarget)
	assert.Equal(t, 3600, second.ResponseTimeTargetSeconds)
	assert.Len(t, kpiRepo.metrics, 1)
}

func TestCalculate_OtherUserRequiresManager(t *testing.T) {
	t.Parallel()

	svc := emptyService(newFakeKPIRepo())

	other := "u2"
	_, err := svc.Calculate(authedContext(t, "u1", "employee"), kpi.CalculateRequest{
		UserID: &other,
		Month:  6,
		Year:   2025,
	})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = svc.Calculate(authedContext(t, "u1", "manager"), kpi.CalculateRequest{
		UserID: &other,
		Month:  6,
		Year:   2025,
	})
	assert.NoError(t, err)
}

func TestRecordEvaluation_ScoreBounds(t *testing.T) {
	t.Parallel()

	svc := emptyService(newFakeKPIRepo())
	ctx := authedContext(t, "mgr", "manager")

	_, err := svc.RecordEvaluation(ctx, kpi.RecordEvaluationRequest{
		UserID:       "u1",
		MetricID:     "m1",
		Month:        6,
		Year:         2025,
		OverallScore: 101,
	})
	assert.ErrorIs(t, err, kpi.ErrInvalidScore)

	_, err = svc.RecordEvaluation(ctx, kpi.RecordEvaluationRequest{
		UserID:       "u1",
		MetricID:     "m1",
		Month:        6,
		Year:         2025,
		OverallScore: -1,
	})
	assert.ErrorIs(t, err, kpi.ErrInvalidScore)
}

func TestRecordEvaluation_RequiresManager(t *testing.T) {
	t.Parallel()

	svc := emptyService(newFakeKPIRepo())

	_, err := svc.RecordEvaluation(authedContext(t, "u1", "employee"), kpi.RecordEvaluationRequest{
		UserID:       "u1",
		MetricID:     "m1",
		Month:        6,
		Year:         2025,
		OverallScore: 80,
	})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestRecordEvaluation_UpsertPreservesEvaluator(t *testing.T) {
	t.Parallel()

	kpiRepo := newFakeKPIRepo()
	svc := emptyService(kpiRepo)

	req := kpi.RecordEvaluationRequest{
		UserID:       "u1",
		MetricID:     "m1",
		Month:        6,
		Year:         2025,
		OverallScore: 80,
	}

	first, err := svc.RecordEvaluation(authedContext(t, "mgr-a", "manager"), req)
	require.NoError(t, err)
	assert.Equal(t, "mgr-a", first.EvaluatedBy)

	req.OverallScore = 95
	second, err := svc.RecordEvaluation(authedContext(t, "mgr-b", "manager"), req)
	require.NoError(t, err)
	assert.Equal(t, "mgr-a", second.EvaluatedBy)
	assert.Equal(t, 95, second.OverallScore)
	assert.Len(t, kpiRepo.evaluations, 1)
}

func TestListMetrics_DefaultsToCaller(t *testing.T) {
	t.Parallel()

	kpiRepo := newFakeKPIRepo()
	svc := emptyService(kpiRepo)

	_, err := svc.CalculateForUser(context.Background(), "u1", 6, 2025)
	require.NoError(t, err)
	_, err = svc.CalculateForUser(context.Background(), "u2", 6, 2025)
	require.NoError(t, err)

	metrics, err := svc.ListMetrics(authedContext(t, "u1", "employee"), kpi.MetricFilter{})
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "u1", metrics[0].UserID)

	other := "u2"
	_, err = svc.ListMetrics(authedContext(t, "u1", "employee"), kpi.MetricFilter{UserID: &other})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestMonthWindow(t *testing.T) {
	t.Parallel()

	from, to := monthWindow(2, 2024)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 29, to.Day())
	assert.Equal(t, time.February, to.Month())

	_, toDec := monthWindow(12, 2025)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), toDec)
}
