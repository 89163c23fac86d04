package transform

import (
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// PostponeRetirement extends contributions by whole years.
// This is useful for exploring "work one more year" scenarios.
type PostponeRetirement struct {
	Years int
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	return fmt.Sprintf("Keep contributing %d more years", pt.Years)
}

func (pt *PostponeRetirement) Validate(base *domain.NationalInputs) error {
	if pt.Years < 0 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", pt.Years), nil)
	}
	if err := requireBase(pt.Name(), base); err != nil {
		return err
	}
	if base.RetireAge+pt.Years > 100 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("retirement age %d exceeds 100", base.RetireAge+pt.Years), nil)
	}
	return nil
}

func (pt *PostponeRetirement) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.RetireAge += pt.Years
	return &modified, nil
}

// SetRetireAge sets the contribution end age to an absolute value.
// Unlike PostponeRetirement which is relative, this sets an exact age.
type SetRetireAge struct {
	Age int
}

func (sra *SetRetireAge) Name() string {
	return "set_retire_age"
}

func (sra *SetRetireAge) Description() string {
	return fmt.Sprintf("Stop contributing at age %d", sra.Age)
}

func (sra *SetRetireAge) Validate(base *domain.NationalInputs) error {
	if sra.Age <= 0 || sra.Age > 100 {
		return NewTransformError(sra.Name(), "validate", fmt.Sprintf("age must be between 1 and 100, got %d", sra.Age), nil)
	}
	return requireBase(sra.Name(), base)
}

func (sra *SetRetireAge) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.RetireAge = sra.Age
	return &modified, nil
}
