package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist for the given
	// owner. Records belonging to a different owner report the same error.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when an insert violates a uniqueness
	// constraint, e.g. registering a taken username.
	ErrAlreadyExists = errors.New("record already exists")
)
