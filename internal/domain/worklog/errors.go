package worklog

import "errors"

var (
	ErrWorkLogNotFound = errors.New("work log not found")
	ErrNotOwner        = errors.New("work log belongs to another user")
)
