package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a snippet library error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrInvalidDocument ErrorCode = "INVALID_DOCUMENT" // 422
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// SnipError represents a structured error with code, status, and details.
type SnipError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SnipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SnipError {
	return &SnipError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a snippet cannot be found.
func NewNotFound(path string) *SnipError {
	return &SnipError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("snippet not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidDocument creates a 422 error for a malformed snippet document.
// The location identifies the offending node (slash-joined path, "" for root).
func NewInvalidDocument(location, msg string) *SnipError {
	where := location
	if where == "" {
		where = "(root)"
	}
	return &SnipError{
		Code:    ErrInvalidDocument,
		Status:  422,
		Message: fmt.Sprintf("invalid document at %s: %s", where, msg),
		Details: map[string]any{"location": location},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *SnipError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &SnipError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a SnipError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SnipError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
