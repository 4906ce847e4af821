// Package apperr defines the error taxonomy shared by the service and
// delivery layers: validation faults, authorization denials, store-level
// faults and malformed search patterns. Every kind is a distinct type so
// callers can branch with errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed caller input, detected before any
// store access happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AccessDenied reports that the caller's role is not permitted to perform
// an operation. The gated operation must not have executed.
type AccessDenied struct {
	Role      string
	Operation string
}

func (e *AccessDenied) Error() string {
	return fmt.Sprintf("role %q is not permitted to perform %s", e.Role, e.Operation)
}

// PersistenceError wraps a store-level fault (constraint violation, I/O
// fault) surfaced by the store adapter.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError for the named operation.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// PatternError reports a search pattern that is not a valid regular
// expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAccessDenied reports whether err is an AccessDenied.
func IsAccessDenied(err error) bool {
	var ad *AccessDenied
	return errors.As(err, &ad)
}

// HTTPStatus maps an error to the status code the delivery layer should
// respond with.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		ad *AccessDenied
		pe *PatternError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &pe):
		return http.StatusBadRequest
	case errors.As(err, &ad):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
