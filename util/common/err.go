// Package common provides error construction helpers and the business
// error taxonomy shared by services and controllers.
package common

import (
	"errors"
	"fmt"
)

// Sentinel business errors. Controllers translate these into HTTP
// status codes at the API boundary; anything unrecognized becomes 500.
var (
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrForbidden            = errors.New("permission denied")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("You have already applied to this job.")
	ErrInvalidStatus        = errors.New("Invalid status value.")
)

// ValidationError carries field-keyed messages for malformed or
// conflicting input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("validation failed: %s: %s", field, msg)
	}
	return "validation failed"
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// AsValidationError unwraps err into a *ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}
