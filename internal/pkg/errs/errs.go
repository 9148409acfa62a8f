package errs

import "errors"

var (
	// ErrNotFound covers both missing records and records owned by someone
	// else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict flags duplicate-resource creation (e.g. a taken email).
	ErrConflict = errors.New("conflict")
)
