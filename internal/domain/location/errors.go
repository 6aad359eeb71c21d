package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNameExists       = errors.New("location name already exists")
)
