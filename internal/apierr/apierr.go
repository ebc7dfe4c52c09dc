// Package apierr defines the typed errors handlers raise and the single place
// they are translated into HTTP statuses.
package apierr

import (
	"errors"
	"net/http"

	"github.com/cliptube/backend/internal/repositories"
)

// Error is an API-visible failure with an HTTP status and a safe message.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches an underlying error without changing the visible message.
func (e *Error) WithCause(err error) *Error {
	return &Error{Status: e.Status, Message: e.Message, cause: err}
}

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Auth reports bad credentials or an expired/reused token.
func Auth(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports an ownership violation.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a duplicate resource.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Upload reports a media bridge failure.
func Upload(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// Internal reports an unexpected storage or runtime failure.
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// Resolve maps any error to the status and message exposed to callers.
// Repository sentinels are translated here so handlers can propagate them
// untouched; anything unrecognized becomes a 500 without leaking internals.
func Resolve(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict, "resource already exists"
	}
	return http.StatusInternalServerError, "internal server error"
}
