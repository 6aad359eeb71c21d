package http

import (
	"net/http"

	"github.com/workpulse/attendance-backend-go/internal/domain/user"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	GetMyQRToken(w http.ResponseWriter, r *http.Request)
	RegenerateQRToken(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// GetMe implements UserHandler.
func (h *userHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyQRToken implements UserHandler.
func (h *userHandlerImpl) GetMyQRToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.GetMyQRToken(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RegenerateQRToken implements UserHandler.
func (h *userHandlerImpl) RegenerateQRToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.RegenerateQRToken(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "QR token regenerated", result)
}
