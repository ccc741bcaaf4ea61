package service

import "errors"

var (
	// ErrInvalidInput indicates a required field was missing or empty after
	// trimming; the caller must resubmit.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates missing or incorrect login credentials.
	// Unknown usernames and wrong passwords are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering a taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrNotFound indicates the record is absent or owned by another
	// account; the two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
