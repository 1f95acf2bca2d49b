package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity is absent or not owned by the caller.
	// The two cases are intentionally indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrUpstream wraps failures of an external calendar provider.
	ErrUpstream = errors.New("calendar provider failure")
	// ErrUnsupportedProvider is returned for provider tags with no registered adapter.
	ErrUnsupportedProvider = errors.New("unsupported calendar provider")
	// ErrPublishingDisabled is returned by feed publishing when no object storage is configured.
	ErrPublishingDisabled = errors.New("feed publishing is disabled")
	// ErrUnauthenticated is returned when a request carries no valid identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports a request that violates a precondition.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
