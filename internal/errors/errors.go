package errors

import (
	"errors"
	"net/http"

	"userdir/internal/api"
)

var (
	// ErrUserNotFound is returned when no user exists for the given id.
	ErrUserNotFound = errors.New("User not found")
	// ErrUserAlreadyExists is returned when a create collides on email.
	ErrUserAlreadyExists = errors.New("User with this email already exists")
	// ErrEmailAlreadyExists is returned when an update would take another user's email.
	ErrEmailAlreadyExists = errors.New("Email already exists")
)

// HTTPError pairs a domain error with its HTTP status and stable code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// Envelope renders the error as the wire-level error body.
func (e *HTTPError) Envelope() api.ErrorResponse {
	return api.ErrorResponse{
		Success: false,
		Error: api.ErrorDetail{
			Message: e.Message,
			Code:    e.Code,
		},
	}
}

// MapError maps known domain errors to HTTP errors. Anything unrecognized is
// an unexpected persistence failure and surfaces as a 500 carrying the
// operation-scoped message and code supplied by the caller.
func MapError(err error, fallbackMessage, fallbackCode string) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), api.CodeUserNotFound)
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), api.CodeUserAlreadyExists)
	case errors.Is(err, ErrEmailAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), api.CodeEmailAlreadyExists)
	default:
		return NewHTTPError(http.StatusInternalServerError, fallbackMessage, fallbackCode)
	}
}
