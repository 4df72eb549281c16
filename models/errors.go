package models

import "errors"

// Cart and catalog error taxonomy. Callers match with errors.Is; the HTTP
// layer maps each one to a status code.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrUnavailable       = errors.New("product unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDependencyFailure = errors.New("catalog lookup failed")
)
