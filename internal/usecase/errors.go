package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrUnresolved marks a record whose team, player or game reference is
	// unknown. Such records are skipped, never fatal.
	ErrUnresolved = errors.New("unresolved reference")
)
