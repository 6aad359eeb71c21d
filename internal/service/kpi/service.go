package kpi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"

	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/domain/kpi"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
	"github.com/workpulse/attendance-backend-go/internal/domain/task"
	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
)

type KPIServiceImpl struct {
	kpi.KPIRepository
	attendance.AttendanceRepository
	worklog.WorkLogRepository
	message.MessageRepository
	task.TaskRepository
	targets kpi.Targets
}

func NewKPIService(
	kpiRepo kpi.KPIRepository,
	attendanceRepo attendance.AttendanceRepository,
	worklogRepo worklog.WorkLogRepository,
	messageRepo message.MessageRepository,
	taskRepo task.TaskRepository,
	targets kpi.Targets,
) kpi.KPIService {
	return &KPIServiceImpl{
		KPIRepository:        kpiRepo,
		AttendanceRepository: attendanceRepo,
		WorkLogRepository:    worklogRepo,
		MessageRepository:    messageRepo,
		TaskRepository:       taskRepo,
		targets:              targets,
	}
}

// monthWindow returns the inclusive [first of month, end of last day] range.
// Day 0 of the next month normalizes to the correct last calendar day.
func monthWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, time.UTC)
	return from, to
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate implements kpi.KPIService.
func (s *KPIServiceImpl) Calculate(ctx context.Context, req kpi.CalculateRequest) (kpi.MetricResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.MetricResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return kpi.MetricResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return kpi.MetricResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	targetUserID := callerID
	if req.UserID != nil && *req.UserID != "" {
		targetUserID = *req.UserID
	}

	if targetUserID != callerID {
		role, _ := claims["role"].(string)
		if !user.Role(role).CanManageOthers() {
			return kpi.MetricResponse{}, user.ErrManagerAccessRequired
		}
	}

	return s.CalculateForUser(ctx, targetUserID, req.Month, req.Year)
}

// CalculateForUser implements kpi.KPIService. Recomputation overwrites the
// four derived fields of the (user, month, year) metric row; it never
// duplicates and never touches targets, so re-invoking is always safe.
func (s *KPIServiceImpl) CalculateForUser(ctx context.Context, userID string, month, year int) (kpi.MetricResponse, error) {
	var result kpi.CalculationResult

	// The four sub-calculations share no intermediate state and run
	// concurrently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hours, err := s.workHoursTotal(gctx, userID, month, year)
		if err != nil {
			return err
		}
		result.WorkHoursTotal = hours
		return nil
	})

	g.Go(func() error {
		avg, err := s.avgResponseTimeSeconds(gctx, userID, month, year)
		if err != nil {
			return err
		}
		result.AvgResponseTimeSeconds = avg
		return nil
	})

	g.Go(func() error {
		rate, err := s.taskCompletionRate(gctx, userID, month, year)
		if err != nil {
			return err
		}
		result.TaskCompletionRate = rate
		return nil
	})

	g.Go(func() error {
		score, err := s.productivityScore(gctx, userID, month, year)
		if err != nil {
			return err
		}
		result.ProductivityScore = score
		return nil
	})

	if err := g.Wait(); err != nil {
		return kpi.MetricResponse{}, fmt.Errorf("failed to calculate kpi for user %s: %w", userID, err)
	}

	metric, err := s.KPIRepository.UpsertMetric(ctx, userID, month, year, result, s.targets)
	if err != nil {
		return kpi.MetricResponse{}, fmt.Errorf("failed to upsert kpi metric: %w", err)
	}

	return mapMetricToResponse(metric), nil
}

// workHoursTotal sums closed attendance sessions in the month, in hours
// rounded to two decimals. Open sessions contribute nothing.
func (s *KPIServiceImpl) workHoursTotal(ctx context.Context, userID string, month, year int) (float64, error) {
	from, to := monthWindow(month, year)

	records, err := s.AttendanceRepository.ListBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	totalMinutes := 0
	for _, rec := range records {
		if rec.CheckOut == nil {
			continue
		}
		totalMinutes += int(math.Floor(rec.CheckOut.Sub(rec.CheckIn).Minutes()))
	}

	return round2(float64(totalMinutes) / 60), nil
}

// avgResponseTimeSeconds is the floored mean of response times in the month,
// 0 when there are no responses.
func (s *KPIServiceImpl) avgResponseTimeSeconds(ctx context.Context, userID string, month, year int) (int, error) {
	from, to := monthWindow(month, year)

	responses, err := s.MessageRepository.ListResponsesBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list message responses: %w", err)
	}

	if len(responses) == 0 {
		return 0, nil
	}

	totalSeconds := 0
	for _, resp := range responses {
		totalSeconds += resp.ResponseTimeSeconds
	}

	return totalSeconds / len(responses), nil
}

// taskCompletionRate is completed over non-cancelled tasks created in the
// month, as a percentage with two decimals. 0 when the denominator is 0.
func (s *KPIServiceImpl) taskCompletionRate(ctx context.Context, userID string, month, year int) (float64, error) {
	from, to := monthWindow(month, year)

	tasks, err := s.TaskRepository.ListCreatedBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	completed := 0
	total := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
		if t.Status != task.StatusCancelled {
			total++
		}
	}

	if total == 0 {
		return 0, nil
	}

	return round2(float64(completed) / float64(total) * 100), nil
}

// productivityScore compares logged work-log minutes against attendance
// minutes, capped at 100%. Zero attendance yields 0 even when work was
// logged; the guard is policy, not an error.
func (s *KPIServiceImpl) productivityScore(ctx context.Context, userID string, month, year int) (float64, error) {
	from, to := monthWindow(month, year)

	logs, err := s.WorkLogRepository.ListBetween(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list work logs: %w", err)
	}

	if len(logs) == 0 {
		return 0, nil
	}

	loggedMinutes := 0
	for _, log := range logs {
		if log.DurationMinutes != nil {
			loggedMinutes += *log.DurationMinutes
		}
	}

	workHours, err := s.workHoursTotal(ctx, userID, month, year)
	if err != nil {
		return 0, err
	}

	workMinutes := workHours * 60
	if workMinutes == 0 {
		return 0, nil
	}

	productivity := math.Min(float64(loggedMinutes)/workMinutes*100, 100)
	return round2(productivity), nil
}

// ListMetrics implements kpi.KPIService.
func (s *KPIServiceImpl) ListMetrics(ctx context.Context, filter kpi.MetricFilter) ([]kpi.MetricResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	if filter.UserID == nil || *filter.UserID == "" {
		filter.UserID = &callerID
	}

	if *filter.UserID != callerID {
		role, _ := claims["role"].(string)
		if !user.Role(role).CanManageOthers() {
			return nil, user.ErrManagerAccessRequired
		}
	}

	metrics, err := s.KPIRepository.ListMetrics(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi metrics: %w", err)
	}

	responses := make([]kpi.MetricResponse, 0, len(metrics))
	for _, m := range metrics {
		responses = append(responses, mapMetricToResponse(m))
	}

	return responses, nil
}

// RecordEvaluation implements kpi.KPIService. Upsert keyed by
// (user, month, year); the original evaluator is preserved on update.
func (s *KPIServiceImpl) RecordEvaluation(ctx context.Context, req kpi.RecordEvaluationRequest) (kpi.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.EvaluationResponse{}, err
	}

	if req.OverallScore < 0 || req.OverallScore > 100 {
		return kpi.EvaluationResponse{}, kpi.ErrInvalidScore
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return kpi.EvaluationResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	evaluatorID, ok := claims["user_id"].(string)
	if !ok || evaluatorID == "" {
		return kpi.EvaluationResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)
	if !user.Role(role).CanManageOthers() {
		return kpi.EvaluationResponse{}, user.ErrManagerAccessRequired
	}

	eval := kpi.Evaluation{
		UserID:       req.UserID,
		MetricID:     req.MetricID,
		Month:        req.Month,
		Year:         req.Year,
		EvaluatedBy:  evaluatorID,
		OverallScore: req.OverallScore,
		Comments:     req.Comments,
	}

	stored, err := s.KPIRepository.UpsertEvaluation(ctx, eval)
	if err != nil {
		if errors.Is(err, kpi.ErrMetricNotFound) {
			return kpi.EvaluationResponse{}, kpi.ErrMetricNotFound
		}
		return kpi.EvaluationResponse{}, fmt.Errorf("failed to upsert kpi evaluation: %w", err)
	}

	return mapEvaluationToResponse(stored), nil
}

// ListEvaluations implements kpi.KPIService.
func (s *KPIServiceImpl) ListEvaluations(ctx context.Context, userID string, month, year *int) ([]kpi.EvaluationResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	callerID, ok := claims["user_id"].(string)
	if !ok || callerID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	if userID == "" {
		userID = callerID
	}

	if userID != callerID {
		role, _ := claims["role"].(string)
		if !user.Role(role).CanManageOthers() {
			return nil, user.ErrManagerAccessRequired
		}
	}

	evals, err := s.KPIRepository.ListEvaluations(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi evaluations: %w", err)
	}

	responses := make([]kpi.EvaluationResponse, 0, len(evals))
	for _, e := range evals {
		responses = append(responses, mapEvaluationToResponse(e))
	}

	return responses, nil
}

func mapMetricToResponse(m kpi.Metric) kpi.MetricResponse {
	return kpi.MetricResponse{
		ID:                        m.ID,
		UserID:                    m.UserID,
		Month:                     m.Month,
		Year:                      m.Year,
		WorkHoursTotal:            m.WorkHoursTotal,
		WorkHoursTarget:           m.WorkHoursTarget,
		AvgResponseTimeSeconds:    m.AvgResponseTimeSeconds,
		ResponseTimeTargetSeconds: m.ResponseTimeTargetSeconds,
		TaskCompletionRate:        m.TaskCompletionRate,
		TaskCompletionTarget:      m.TaskCompletionTarget,
		ProductivityScore:         m.ProductivityScore,
		ProductivityTarget:        m.ProductivityTarget,
		UpdatedAt:                 m.UpdatedAt.Format(time.RFC3339),
	}
}

func mapEvaluationToResponse(e kpi.Evaluation) kpi.EvaluationResponse {
	return kpi.EvaluationResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		MetricID:      e.MetricID,
		Month:         e.Month,
		Year:          e.Year,
		EvaluatedBy:   e.EvaluatedBy,
		EvaluatorName: e.EvaluatorName,
		OverallScore:  e.OverallScore,
		Comments:      e.Comments,
	}
}
