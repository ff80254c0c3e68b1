// Package apperr defines the error taxonomy shared by services and
// handlers. Services wrap these sentinels with context; handlers map
// them to HTTP status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrInvariant    = errors.New("invariant violation")
)

// Unauthorizedf wraps ErrUnauthorized with a formatted message
func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrUnauthorized, args)...)
}

// Forbiddenf wraps ErrForbidden with a formatted message
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrForbidden, args)...)
}

// NotFoundf wraps ErrNotFound with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrNotFound, args)...)
}

// Conflictf wraps ErrConflict with a formatted message
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrConflict, args)...)
}

// BadRequestf wraps ErrBadRequest with a formatted message
func BadRequestf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrBadRequest, args)...)
}

// Invariantf wraps ErrInvariant with a formatted message
func Invariantf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, prepend(ErrInvariant, args)...)
}

func prepend(err error, args []interface{}) []interface{} {
	return append([]interface{}{err}, args...)
}

// StatusCode maps an error to its HTTP status. Unrecognized errors are
// internal server errors.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return 400
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrInvariant):
		return 422
	default:
		return 500
	}
}
