package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks caller-input failures. Everything not wrapping it is
// an unexpected internal failure and must reach the caller only as a fixed
// generic message.
var ErrValidation = errors.New("validation failed")

// validationError wraps ErrValidation with a caller-safe message.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// IsValidation reports whether err is a caller-input failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ValidationMessage returns the caller-safe message of a validation error.
// For non-validation errors it returns the empty string; internal error
// text must never reach the wire.
func ValidationMessage(err error) string {
	if !IsValidation(err) {
		return ""
	}
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) {
		return msg[len(prefix):]
	}
	return msg
}
