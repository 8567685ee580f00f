package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict is returned when a write collides with an existing record
	// in a way the caller has to resolve.
	ErrConflict = errors.New("repository: conflict")
)
