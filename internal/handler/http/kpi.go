package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/workpulse/attendance-backend-go/internal/domain/kpi"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/response"
)

type KPIHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	ListMetrics(w http.ResponseWriter, r *http.Request)
	RecordEvaluation(w http.ResponseWriter, r *http.Request)
	ListEvaluations(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.KPIService
}

func NewKPIHandler(kpiService kpi.KPIService) KPIHandler {
	return &kpiHandlerImpl{
		kpiService: kpiService,
	}
}

// Calculate implements KPIHandler.
func (h *kpiHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req kpi.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.kpiService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI metrics calculated", result)
}

// ListMetrics implements KPIHandler.
func (h *kpiHandlerImpl) ListMetrics(w http.ResponseWriter, r *http.Request) {
	var filter kpi.MetricFilter

	query := r.URL.Query()
	if userID := query.Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if month, err := strconv.Atoi(query.Get("month")); err == nil {
		filter.Month = &month
	}
	if year, err := strconv.Atoi(query.Get("year")); err == nil {
		filter.Year = &year
	}

	result, err := h.kpiService.ListMetrics(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordEvaluation implements KPIHandler.
func (h *kpiHandlerImpl) RecordEvaluation(w http.ResponseWriter, r *http.Request) {
	var req kpi.RecordEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.kpiService.RecordEvaluation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evaluation recorded", result)
}

// ListEvaluations implements KPIHandler.
func (h *kpiHandlerImpl) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID := query.Get("user_id")

	var month, year *int
	if m, err := strconv.Atoi(query.Get("month")); err == nil {
		month = &m
	}
	if y, err := strconv.Atoi(query.Get("year")); err == nil {
		year = &y
	}

	result, err := h.kpiService.ListEvaluations(r.Context(), userID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
