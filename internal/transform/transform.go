package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// InputTransform rewrites one aspect of a member's national pension inputs,
// such as the claim offset, the contribution end age or the current income.
// Compare, break-even and sensitivity runs express every alternative as a
// chain of these applied to the member's own inputs.
type InputTransform interface {
	// Apply returns modified inputs; base stays as it was
	Apply(base *domain.NationalInputs) (*domain.NationalInputs, error)

	// Name is the registry key, e.g. "claim_defer"
	Name() string

	// Description is the one-line label shown in comparisons
	Description() string

	// Validate rejects parameters that make no sense for base
	Validate(base *domain.NationalInputs) error
}

// ApplyTransforms runs a chain left to right. Each step is validated against
// the output of the step before it, so "postpone_retirement" followed by
// "set_retire_age" sees the postponed age. An empty chain yields a deep copy.
func ApplyTransforms(base *domain.NationalInputs, transforms []InputTransform) (*domain.NationalInputs, error) {
	if base == nil {
		return nil, fmt.Errorf("base inputs cannot be nil")
	}

	out := base.Clone()
	current := &out
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		next, err := step(current, t)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		current = next
	}
	return current, nil
}

func step(in *domain.NationalInputs, t InputTransform) (*domain.NationalInputs, error) {
	if err := t.Validate(in); err != nil {
		return nil, err
	}
	next, err := t.Apply(in)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, NewTransformError(t.Name(), "apply", "returned no inputs", nil)
	}
	return next, nil
}

// Describe joins the descriptions of a chain for display
func Describe(transforms []InputTransform) string {
	if len(transforms) == 0 {
		return "Unchanged inputs"
	}
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, "; ")
}

// TransformError reports which transform rejected the inputs and at which
// stage ("validate" or "apply").
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.TransformName, e.Operation, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError builds a *TransformError as an error
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireBase(name string, base *domain.NationalInputs) error {
	if base == nil {
		return NewTransformError(name, "validate", "base inputs cannot be nil", nil)
	}
	return nil
}
