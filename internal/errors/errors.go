// Package apperrors defines the structured error types shared by the CLI and
// the HTTP server, and the exit codes the process reports.
//
// All wrapping types implement Unwrap so errors.Is and errors.As see through
// them.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The count hit the configured timeout.
	ExitErrorMismatch = 3   // Counters disagreed on the same bound.
	ExitErrorConfig   = 4   // Bad flags, environment or input bound.
	ExitErrorCanceled = 130 // Canceled by SIGINT/SIGTERM.
)

// ConfigError is a user configuration error such as an invalid flag value.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CountError wraps a failed count together with the algorithm that produced
// it.
type CountError struct {
	// Algorithm is the display name of the counter, may be empty.
	Algorithm string
	// Cause is the underlying error.
	Cause error
}

func (e CountError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Algorithm, e.Cause)
}

// Unwrap returns the underlying cause.
func (e CountError) Unwrap() error { return e.Cause }

// NewCountError wraps cause, returning nil when cause is nil.
func NewCountError(algorithm string, cause error) error {
	if cause == nil {
		return nil
	}
	return CountError{Algorithm: algorithm, Cause: cause}
}

// ServerError is an error raised by the HTTP server component.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error, or nil.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError is a rejected HTTP query parameter.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
