// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus indicates a search was attempted against an empty or
// not-yet-loaded course corpus. Use errors.Is() to check this in callers.
var ErrEmptyCorpus = errors.New("course corpus is empty")

// FusionError represents a failure while fusing BM25 and fuzzy result sets
// in hybrid search. Callers fall back to BM25-only results on this error.
type FusionError struct {
	Reason string
	Err    error
}

func (e *FusionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fusion failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fusion failed: %s", e.Reason)
}

func (e *FusionError) Unwrap() error {
	return e.Err
}

// NewFusionError creates a new fusion error.
func NewFusionError(reason string, err error) *FusionError {
	return &FusionError{Reason: reason, Err: err}
}

// ValidationError represents a single rejected request parameter. The HTTP
// layer surfaces Field and Message directly rather than the wrapped Go
// error text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
