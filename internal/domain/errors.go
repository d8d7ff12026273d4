package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrInvalidReference = errors.New("invalid reference")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// Domain error types implementing HTTPError interface
type (
	// InvalidReferenceError indicates a malformed identifier
	InvalidReferenceError struct {
		Message string
	}

	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *InvalidReferenceError) Error() string { return e.Message }
func (e *NotFoundError) Error() string         { return e.Message }
func (e *ValidationError) Error() string       { return e.Message }
func (e *UnauthorizedError) Error() string     { return e.Message }
func (e *ForbiddenError) Error() string        { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *InvalidReferenceError) StatusCode() int { return http.StatusBadRequest }
func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int     { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int        { return http.StatusForbidden }

// Is implementations so errors.Is() matches the sentinels
func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }
func (e *NotFoundError) Is(target error) bool         { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool       { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool     { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool        { return target == ErrForbidden }

// ConflictError represents a resource conflict with details about the existing resource.
// Sibling-name and slug conflicts are reported to clients as 400 Bad Request.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (file, folder, project)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewInvalidReference returns an InvalidReferenceError with a formatted message
func NewInvalidReference(format string, args ...any) error {
	return &InvalidReferenceError{Message: fmt.Sprintf(format, args...)}
}

// NewNotFound returns a NotFoundError with a formatted message
func NewNotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// NewValidation returns a ValidationError with a formatted message
func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewUnauthorized returns an UnauthorizedError with a formatted message
func NewUnauthorized(format string, args ...any) error {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}

// NewForbidden returns a ForbiddenError with a formatted message
func NewForbidden(format string, args ...any) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}
