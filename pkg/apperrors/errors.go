package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Kind represents the category of a failure
type Kind string

const (
	// KindNotFound means a referenced user or post does not exist
	KindNotFound Kind = "not_found"
	// KindInvalidOperation means a domain rule was violated
	KindInvalidOperation Kind = "invalid_operation"
	// KindConflict means an edge that already exists was created again
	KindConflict Kind = "conflict"
	// KindForbidden means the caller does not own the resource
	KindForbidden Kind = "forbidden"
	// KindUnexpected covers everything else (storage unavailable, etc.)
	KindUnexpected Kind = "unexpected"
)

// Error is the error type returned by the service layer
type Error struct {
	Kind      Kind
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// NotFound builds a KindNotFound error
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, fmt.Sprintf(format, args...), nil)
}

// InvalidOperation builds a KindInvalidOperation error
func InvalidOperation(format string, args ...any) *Error {
	return newError(KindInvalidOperation, fmt.Sprintf(format, args...), nil)
}

// Conflict builds a KindConflict error
func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, fmt.Sprintf(format, args...), nil)
}

// Forbidden builds a KindForbidden error
func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, fmt.Sprintf(format, args...), nil)
}

// Unexpected wraps an infrastructure failure
func Unexpected(message string, err error) *Error {
	return newError(KindUnexpected, message, err)
}

// KindOf returns the kind of the first *Error in the chain, or KindUnexpected
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}
