package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrManagerAccessRequired = errors.New("manager or admin access required")
	ErrAdminAccessRequired   = errors.New("admin access required")
)
