package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/message"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/response"
)

type MessageHandler interface {
	RecordResponse(w http.ResponseWriter, r *http.Request)
	ListMyResponses(w http.ResponseWriter, r *http.Request)
}

type messageHandlerImpl struct {
	messageService message.MessageService
}

func NewMessageHandler(messageService message.MessageService) MessageHandler {
	return &messageHandlerImpl{
		messageService: messageService,
	}
}

// RecordResponse implements MessageHandler.
func (h *messageHandlerImpl) RecordResponse(w http.ResponseWriter, r *http.Request) {
	req := message.RecordResponseRequest{
		MessageID: chi.URLParam(r, "id"),
	}

	result, err := h.messageService.RecordResponse(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Response recorded", result)
}

// ListMyResponses implements MessageHandler.
func (h *messageHandlerImpl) ListMyResponses(w http.ResponseWriter, r *http.Request) {
	var filter message.ResponseFilter

	query := r.URL.Query()
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	result, err := h.messageService.ListMyResponses(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
