package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches typed errors by code so clones and wrapped copies compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrUnknownContentType   = New("UNKNOWN_CONTENT_TYPE", http.StatusBadRequest, "unknown content type")
	ErrBackendUnavailable   = New("BACKEND_UNAVAILABLE", http.StatusServiceUnavailable, "content backend unavailable")
	ErrInvalidBackendConfig = New("INVALID_BACKEND_CONFIG", http.StatusInternalServerError, "invalid content backend configuration")
	ErrBackendRejected      = New("BACKEND_REJECTED", http.StatusBadGateway, "content backend rejected the query")
	ErrCacheMiss            = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// permanentCodes never succeed on retry: the request or the configuration must change first.
var permanentCodes = map[string]struct{}{
	ErrValidation.Code:           {},
	ErrNotFound.Code:             {},
	ErrUnknownContentType.Code:   {},
	ErrInvalidBackendConfig.Code: {},
	ErrBackendRejected.Code:      {},
}

// IsRetryable reports whether repeating the failed operation may succeed. Untyped errors such as
// network failures are retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	_, permanent := permanentCodes[e.Code]
	return !permanent
}
