// Package common defines shared constants and errors used across the server
// and client layers. Callers should match kinds with errors.Is and extract
// the typed errors with errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level error kinds.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (missing, malformed or wrongly signed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError reports bad or missing input. Field names the offending
// input so the transport layer can choose a status per field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// AuthError is a failed credential check. The message tells the client which
// part failed; the kind is always ErrorUnauthorized.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return ErrorUnauthorized }

// ForbiddenError is an operation the acting user is not allowed to perform.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func (e *ForbiddenError) Unwrap() error { return ErrorForbidden }

// NotFoundError is a missing entity with a client-facing message.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrorNotFound }

// InternalError is an unexpected failure below the service layer. It matches
// both ErrorInternal and the underlying cause.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrorInternal, e.Err}
}

// Internal wraps err as an *InternalError for op.
func Internal(op string, err error) error {
	return &InternalError{Op: op, Err: err}
}
