// Package ledgererror defines the error taxonomy shared by the validation,
// storage and service layers.
package ledgererror

import (
	"errors"
	"fmt"
)

// ValidationError represents input that fails a domain invariant.
// The caller can always recover by correcting the input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError for field with a formatted message.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// RecordNotFoundError is returned when an id is not present in a service cache.
type RecordNotFoundError struct {
	Kind string
	ID   string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// PersistenceError wraps a failure to read or write a resource file.
type PersistenceError struct {
	Path string
	Msg  string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Msg, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Msg, e.Path)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a RecordNotFoundError.
func IsNotFound(err error) bool {
	var target *RecordNotFoundError
	return errors.As(err, &target)
}

// IsPersistence reports whether err is or wraps a PersistenceError.
func IsPersistence(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}
