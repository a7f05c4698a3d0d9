package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/stride/internal/logger"
)

var (
	// ErrNotFound is returned when an entity id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps rejected user input.
	ErrValidation = errors.New("validation failed")
	// ErrDateLocked is returned when a habit entry falls before the rollover cutoff.
	ErrDateLocked = errors.New("date can no longer be modified")
	// ErrNotInitialized is returned when the store has not been set up with `stride init`.
	ErrNotInitialized = errors.New("stride is not initialized, run 'stride init'")
)

// Is and As re-export the standard helpers so callers need only one errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Validation returns an ErrValidation-wrapped error with a formatted reason.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound-wrapped error naming the entity kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
