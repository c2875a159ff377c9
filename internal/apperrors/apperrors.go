// Package apperrors defines the error taxonomy surfaced by the API layer.
// Handlers translate these into HTTP statuses; anything unrecognized is
// reported as a generic server error so internal detail never reaches the
// client.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailTaken    = errors.New("user already exists")
	ErrDuplicateName = errors.New("preset name already exists")
	ErrQuotaExceeded = errors.New("maximum of 3 custom presets allowed")

	// ErrNotFound covers both missing records and records owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError describes a single failed field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures for one request. No partial
// state is ever written when one is returned.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field failure and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
