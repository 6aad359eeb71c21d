package kpi

import "errors"

var (
	ErrInvalidScore   = errors.New("overall score must be between 0 and 100")
	ErrMetricNotFound = errors.New("kpi metric not found")
)
