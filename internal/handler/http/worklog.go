package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/worklog"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/response"
)

type WorkLogHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
}

type workLogHandlerImpl struct {
	workLogService worklog.WorkLogService
}

func NewWorkLogHandler(workLogService worklog.WorkLogService) WorkLogHandler {
	return &workLogHandlerImpl{
		workLogService: workLogService,
	}
}

// Create implements WorkLogHandler.
func (h *workLogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worklog.CreateWorkLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workLogService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work log created", result)
}

// Update implements WorkLogHandler.
func (h *workLogHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worklog.UpdateWorkLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.workLogService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work log updated", result)
}

// ListMy implements WorkLogHandler.
func (h *workLogHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	var filter worklog.WorkLogFilter

	query := r.URL.Query()
	if date := query.Get("date"); date != "" {
		filter.Date = &date
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	result, err := h.workLogService.ListMy(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
