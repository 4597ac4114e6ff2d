// Package errors provides common domain error types for the rhymebook application.
//
// This package defines sentinel errors for the conditions the ingestion
// pipeline and dictionary model care about: validation failures, unreachable
// source endpoints, unknown entity kinds, and missing records. Using typed
// errors enables consistent error handling with errors.Is() checks.
//
// Usage:
//
//	import rberrors "github.com/rhymebook/rhymebook-cli/pkg/errors"
//
//	// Return a domain error
//	return nil, rberrors.ErrNotFound
//
//	// Check for domain errors
//	if rberrors.IsValidation(err) {
//	    // handle validation failure
//	}
package errors

import (
	"errors"
	"fmt"
)

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input or a violated model invariant.
	ErrValidation = errors.New("validation error")

	// ErrSourceUnavailable indicates the external record source could not be
	// reached or returned an unusable response. Soft condition: ingestion
	// aborts without propagating it to the caller.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnknownKind indicates an unsupported entity kind was requested.
	// Soft condition: treated as data, not a programming error.
	ErrUnknownKind = errors.New("unknown entity kind")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsSourceUnavailable reports whether any error in err's chain is ErrSourceUnavailable.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsUnknownKind reports whether any error in err's chain is ErrUnknownKind.
func IsUnknownKind(err error) bool {
	return errors.Is(err, ErrUnknownKind)
}

// IsConflict reports whether any error in err's chain is ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// ValidationError describes a violated invariant on a specific entity field.
// It wraps ErrValidation so callers can match it with errors.Is.
type ValidationError struct {
	Kind   string // entity kind, e.g. "sense"
	Field  string // offending field, e.g. "definition"
	Reason string // human-readable constraint description
}

// Validationf builds a ValidationError for the given entity kind and field.
func Validationf(kind, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:   kind,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Kind, e.Field, e.Reason)
}

// Unwrap makes ValidationError match ErrValidation under errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
