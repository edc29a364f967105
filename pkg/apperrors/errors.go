// Package apperrors defines the error taxonomy shared by the core:
// validation failures (rejected before any write), storage failures
// (surfaced as transient, last-known-good state is kept), and missing
// references (treated as a no-op by callers).
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced id (project/unit/problem) that no longer
// exists. Callers treat it as a no-op with a surfaced message.
var ErrNotFound = errors.New("requested resource not found")

// ValidationError is user input rejected before any write occurs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a field-level validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an underlying read/write failure. In-memory state is
// left at its last-known-good snapshot when one of these surfaces.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for operation op. Returns nil when
// err is nil so call sites can wrap unconditionally.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
