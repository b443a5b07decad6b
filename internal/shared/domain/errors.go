// Package domain holds error types shared across Triage's bounded contexts.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common validation failures.
var (
	// ErrUnknownStrategy is returned when a strategy name is not recognized.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrNegativeWeight is returned when a factor weight is below zero.
	ErrNegativeWeight = errors.New("weight cannot be negative")

	// ErrZeroWeightSum is returned when all factor weights sum to zero.
	ErrZeroWeightSum = errors.New("weights sum to zero")

	// ErrUnknownFactor is returned when a weight override names no known factor.
	ErrUnknownFactor = errors.New("unknown factor")
)

// ValidationError represents a rejected input field.
type ValidationError struct {
	// Field is the input field that failed validation.
	Field string

	// Message describes the validation failure.
	Message string

	// Value is the invalid value (if safe to include).
	Value any

	// Err is an optional underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed for %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
