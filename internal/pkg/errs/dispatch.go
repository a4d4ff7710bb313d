package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDownstreamDispatch marks a store write or event emission that failed after the
	// handler had already made its decision. The transport must redeliver.
	ErrDownstreamDispatch = errors.New("downstream dispatch failed")

	// ErrNotificationDispatch marks a failed notification delivery. It is terminal for the event.
	ErrNotificationDispatch = errors.New("notification dispatch failed")
)

// DownstreamDispatchError wraps the failure of a side effect named by Operation.
type DownstreamDispatchError struct {
	Operation string
	Cause     error
}

func NewDownstreamDispatchError(operation string, cause error) *DownstreamDispatchError {
	return &DownstreamDispatchError{Operation: operation, Cause: cause}
}

func (e *DownstreamDispatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrDownstreamDispatch, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDownstreamDispatch, e.Operation)
}

func (e *DownstreamDispatchError) Unwrap() error {
	return ErrDownstreamDispatch
}

// NotificationDispatchError wraps a notification channel failure.
type NotificationDispatchError struct {
	Subject string
	Cause   error
}

func NewNotificationDispatchError(subject string, cause error) *NotificationDispatchError {
	return &NotificationDispatchError{Subject: subject, Cause: cause}
}

func (e *NotificationDispatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrNotificationDispatch, e.Subject, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrNotificationDispatch, e.Subject)
}

func (e *NotificationDispatchError) Unwrap() error {
	return ErrNotificationDispatch
}

// StatusCode maps an error to the HTTP-style status reported by every handler:
// 200 for nil, 400 for validation, 404 for missing entities and 500 otherwise.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether redelivering the same input may succeed.
// Validation and notification failures are terminal; everything else may be transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrValidation) && !errors.Is(err, ErrNotificationDispatch)
}
