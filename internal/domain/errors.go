package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrAlreadyHandled is returned when a terminal suggestion (accepted or
	// rejected) receives another accept/reject attempt.
	ErrAlreadyHandled = errors.New("suggestion already handled")

	// ErrNotHandled is returned when resubmission is attempted on a
	// suggestion that is still in review.
	ErrNotHandled = errors.New("suggestion not yet handled")

	// ErrContentMismatch is returned when a translation suggestion's source
	// HTML does not match the current content of the target.
	ErrContentMismatch = errors.New("content mismatch")

	// ErrContentPolicy is returned when the markup validator finds unsafe
	// markup in a suggestion's HTML content.
	ErrContentPolicy = errors.New("content policy violation")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
