// Package gerrors defines the sentinel error categories shared by every
// component of the graph database: validation, not-found, transaction
// state, and I/O failures. Callers use errors.Is/errors.As against the
// sentinels below rather than matching on message text.
package gerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the categories defined by the error handling design.
var (
	// ErrValidation indicates bad input shape: empty attribute map, wrong
	// scalar type, malformed query, unknown operator, invalid regex, bad
	// UUID, duplicate database name, self-loop, duplicate edge, missing
	// index, and similar caller mistakes.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates an unknown vertex id, unknown edge, or unknown
	// database name.
	ErrNotFound = errors.New("not found")

	// ErrState indicates a transaction command issued in the wrong state.
	ErrState = errors.New("invalid state")

	// ErrIO indicates a file read/write failure.
	ErrIO = errors.New("io error")
)

// Validation formats a message and wraps it as a ValidationError.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// NotFound wraps a message as a NotFoundError.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// State wraps a message as a StateError.
func State(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrState)
}

// IO wraps an underlying error as an IOError, preserving the chain so
// callers can still unwrap to the original os/io error.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}

// IsValidation reports whether err is or wraps ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsState reports whether err is or wraps ErrState.
func IsState(err error) bool { return errors.Is(err, ErrState) }

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }
