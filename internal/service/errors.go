package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services and mapped to HTTP statuses by handlers.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("not allowed")
	ErrNotFound     = errors.New("not found")
)

// ValidationError reports a rejected input field. Validation runs before
// any store access, so no partial writes can precede it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
