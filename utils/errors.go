package utils

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every lookup that finds no record.
var ErrNotFound = errors.New("not found")

// NotFoundError wraps ErrNotFound with the kind and id that were looked up.
func NotFoundError(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
}

// ConfigurationError reports a stored survey setting that cannot be interpreted.
type ConfigurationError struct {
	Key   string
	Value any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid survey setting %q: %v (%T)", e.Key, e.Value, e.Value)
}

// ConflictError is returned when a unique slug could not be stored after
// Attempts tries against the storage constraint.
type ConflictError struct {
	Locale   string
	Slug     string
	Attempts int
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slug %q (%s) still conflicts after %d attempts", e.Slug, e.Locale, e.Attempts)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is, or wraps, a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsConflict reports whether err is, or wraps, a *ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
