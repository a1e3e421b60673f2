package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
)

// Scheduling errors raised by the memory model and the schedulers.
var (
	ErrInvalidGrade         = errors.New("invalid grade")
	ErrInvalidElapsedDays   = errors.New("invalid elapsed days")
	ErrInvalidMemoryState   = errors.New("invalid memory state")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrInvalidDate          = errors.New("invalid date")
	ErrMissingRequiredField = errors.New("missing required field")
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
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
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

// ItemFailure records a per-item failure of a best-effort batch operation.
type ItemFailure struct {
	ID  uuid.UUID
	Err error
}

func (f ItemFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.ID, f.Err)
}

func (f ItemFailure) Unwrap() error { return f.Err }
