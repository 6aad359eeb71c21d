package task

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrTaskAlreadyClosed = errors.New("task is already completed or cancelled")
)
