// Package domain defines the core domain models and errors for kvmesh.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "KV-KEY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks whether the error is a DomainError at all.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Keyspace errors (KEY)
// ============================================================================

var (
	// ErrKeyNotFound indicates the key has never been set.
	ErrKeyNotFound = NewDomainError("KV-KEY-4040", "key not found")

	// ErrKeyExpired indicates the key exists but its TTL has elapsed.
	ErrKeyExpired = NewDomainError("KV-KEY-4041", "key expired")
)

// ============================================================================
// Command errors (CMD)
// ============================================================================

var (
	// ErrUnknownCommand indicates the command name is not recognized.
	ErrUnknownCommand = NewDomainError("KV-CMD-4000", "unknown command")

	// ErrMissingCommand indicates an empty command frame.
	ErrMissingCommand = NewDomainError("KV-CMD-4001", "missing command")

	// ErrMissingArgument indicates a required positional argument is absent.
	ErrMissingArgument = NewDomainError("KV-CMD-4002", "missing argument")

	// ErrWrongArgument indicates an argument is present but unusable.
	ErrWrongArgument = NewDomainError("KV-CMD-4003", "wrong argument")
)
