package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientHistory signals fewer than the minimum paid months and no
	// credited months. The accompanying result carries a zero benefit.
	ErrInsufficientHistory = errors.New("insufficient contribution history")

	// ErrInvalidAgeOrder rejects current/retirement/life-expectancy ages that
	// are not strictly increasing.
	ErrInvalidAgeOrder = errors.New("invalid age ordering")

	// ErrInvalidInput is the default cause of a ValidationError
	ErrInvalidInput = errors.New("invalid input")

	// ErrMutuallyExclusiveClaim rejects early and deferred claiming together
	ErrMutuallyExclusiveClaim = errors.New("early and deferred claiming are mutually exclusive")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the specific cause, defaulting to ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
