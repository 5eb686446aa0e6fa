// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError with the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidName is returned when a display name is empty or too long.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidPassword is returned when a password doesn't meet the policy.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidWalletAddress is returned when a wallet address is malformed.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")

	// ErrMissingCredential is returned when a login supplies neither a password
	// nor a wallet address.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError describes why a single input field was rejected.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err should be one of the
// domain sentinels so callers can branch with errors.Is.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap exposes the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation for every ValidationError in addition to the wrapped sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
