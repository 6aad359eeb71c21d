package worklog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
	"github.com/workpulse/attendance-backend-go/internal/pkg/validator"
)

type WorkLogServiceImpl struct {
	worklog.WorkLogRepository
}

func NewWorkLogService(worklogRepo worklog.WorkLogRepository) worklog.WorkLogService {
	return &WorkLogServiceImpl{
		WorkLogRepository: worklogRepo,
	}
}

// combineDateTime anchors a wall-clock time on a calendar date.
func combineDateTime(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		time.UTC,
	)
}

// durationMinutes floors the span between start and end to whole minutes.
func durationMinutes(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Minutes()))
}

// Create implements worklog.WorkLogService.
func (s *WorkLogServiceImpl) Create(ctx context.Context, req worklog.CreateWorkLogRequest) (worklog.WorkLogResponse, error) {
	if err := req.Validate(); err != nil {
		return worklog.WorkLogResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return worklog.WorkLogResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	date, _ := validator.IsValidDate(req.Date)
	startClock, _ := validator.IsValidClockTime(req.StartTime)
	start := combineDateTime(date, startClock)

	log := worklog.WorkLog{
		UserID:      userID,
		Date:        date,
		StartTime:   start,
		Description: req.Description,
		ProjectTag:  req.ProjectTag,
	}

	if req.EndTime != nil {
		endClock, _ := validator.IsValidClockTime(*req.EndTime)
		end := combineDateTime(date, endClock)
		if !end.After(start) {
			return worklog.WorkLogResponse{}, validator.ValidationErrors{{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			}}
		}

		minutes := durationMinutes(start, end)
		log.EndTime = &end
		log.DurationMinutes = &minutes
	}

	created, err := s.WorkLogRepository.Create(ctx, log)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to create work log: %w", err)
	}

	return mapWorkLogToResponse(created), nil
}

// Update implements worklog.WorkLogService. Duration is rederived whenever
// the end time changes; it is never patched directly.
func (s *WorkLogServiceImpl) Update(ctx context.Context, req worklog.UpdateWorkLogRequest) (worklog.WorkLogResponse, error) {
	if err := req.Validate(); err != nil {
		return worklog.WorkLogResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return worklog.WorkLogResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	log, err := s.WorkLogRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worklog.WorkLogResponse{}, err
	}

	if log.UserID != userID {
		return worklog.WorkLogResponse{}, worklog.ErrNotOwner
	}

	if req.EndTime != nil {
		endClock, _ := validator.IsValidClockTime(*req.EndTime)
		end := combineDateTime(log.Date, endClock)
		if !end.After(log.StartTime) {
			return worklog.WorkLogResponse{}, validator.ValidationErrors{{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			}}
		}

		minutes := durationMinutes(log.StartTime, end)
		log.EndTime = &end
		log.DurationMinutes = &minutes
	}

	if req.Description != nil {
		log.Description = *req.Description
	}

	if req.ProjectTag != nil {
		log.ProjectTag = req.ProjectTag
	}

	updated, err := s.WorkLogRepository.Update(ctx, log)
	if err != nil {
		return worklog.WorkLogResponse{}, fmt.Errorf("failed to update work log: %w", err)
	}

	return mapWorkLogToResponse(updated), nil
}

// ListMy implements worklog.WorkLogService.
func (s *WorkLogServiceImpl) ListMy(ctx context.Context, filter worklog.WorkLogFilter) ([]worklog.WorkLogResponse, error) {
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

	logs, err := s.WorkLogRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}

	responses := make([]worklog.WorkLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, mapWorkLogToResponse(log))
	}

	return responses, nil
}

func mapWorkLogToResponse(log worklog.WorkLog) worklog.WorkLogResponse {
	resp := worklog.WorkLogResponse{
		ID:              log.ID,
		UserID:          log.UserID,
		Date:            log.Date.Format("2006-01-02"),
		StartTime:       log.StartTime.Format("15:04"),
		DurationMinutes: log.DurationMinutes,
		Description:     log.Description,
		ProjectTag:      log.ProjectTag,
		CreatedAt:       log.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       log.UpdatedAt.Format(time.RFC3339),
	}

	if log.EndTime != nil {
		end := log.EndTime.Format("15:04")
		resp.EndTime = &end
	}

	return resp
}
