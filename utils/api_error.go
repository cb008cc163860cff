package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ApiError is the failure shape the whole API speaks: a status code, a
// human-readable message and an optional detail list. Services return these
// (or wrap them); controllers map anything else to a 500.
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match a wrapped ApiError against the sentinel values
// below by status code.
func (e *ApiError) Is(target error) bool {
	t, ok := target.(*ApiError)
	return ok && t.StatusCode == e.StatusCode
}

var (
	ErrUnauthorized     = &ApiError{StatusCode: http.StatusUnauthorized, Message: "unauthorized request"}
	ErrNotFound         = &ApiError{StatusCode: http.StatusNotFound, Message: "resource not found"}
	ErrForbidden        = &ApiError{StatusCode: http.StatusForbidden, Message: "not allowed"}
	ErrSelfSubscription = &ApiError{StatusCode: http.StatusBadRequest, Message: "cannot subscribe to yourself"}

	// ErrAlreadyExists marks a conditional insert that lost a race. The
	// toggle engine recovers it; it must never reach the HTTP boundary.
	ErrAlreadyExists = &ApiError{StatusCode: http.StatusConflict, Message: "already exists"}

	// ErrTimeout is the retryable storage failure.
	ErrTimeout = &ApiError{StatusCode: http.StatusServiceUnavailable, Message: "operation timed out, please retry"}
)

// NewApiError builds a one-off error with a specific message.
func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

// NotFound is shorthand for a 404 with a specific message.
func NotFound(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusNotFound, Message: message}
}

// BadRequest is shorthand for a 400 with a specific message.
func BadRequest(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusBadRequest, Message: message}
}

// MapStorageError converts context cancellation from a storage call into the
// retryable timeout error. Callers must not assume the write took effect.
func MapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}
	return err
}
