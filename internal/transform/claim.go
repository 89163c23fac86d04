package transform

import (
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// ClaimEarly starts the benefit Years before the normal claim age and
// clears any deferral
type ClaimEarly struct {
	Years int
}

func (ce *ClaimEarly) Name() string {
	return "claim_early"
}

func (ce *ClaimEarly) Description() string {
	return fmt.Sprintf("Claim %d years early", ce.Years)
}

func (ce *ClaimEarly) Validate(base *domain.NationalInputs) error {
	if ce.Years <= 0 {
		return NewTransformError(ce.Name(), "validate", fmt.Sprintf("years must be positive, got %d", ce.Years), nil)
	}
	return requireBase(ce.Name(), base)
}

func (ce *ClaimEarly) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.Claim.SetEarlyYears(ce.Years)
	return &modified, nil
}

// ClaimDefer starts the benefit Years after the normal claim age and
// clears any early claim
type ClaimDefer struct {
	Years int
}

func (cd *ClaimDefer) Name() string {
	return "claim_defer"
}

func (cd *ClaimDefer) Description() string {
	return fmt.Sprintf("Defer the claim by %d years", cd.Years)
}

func (cd *ClaimDefer) Validate(base *domain.NationalInputs) error {
	if cd.Years <= 0 {
		return NewTransformError(cd.Name(), "validate", fmt.Sprintf("years must be positive, got %d", cd.Years), nil)
	}
	return requireBase(cd.Name(), base)
}

func (cd *ClaimDefer) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.Claim.SetDeferYears(cd.Years)
	return &modified, nil
}

// ClaimAtNormalAge removes any early or deferred claim
type ClaimAtNormalAge struct{}

func (cn *ClaimAtNormalAge) Name() string {
	return "claim_normal"
}

func (cn *ClaimAtNormalAge) Description() string {
	return "Claim at the normal claim age"
}

func (cn *ClaimAtNormalAge) Validate(base *domain.NationalInputs) error {
	return requireBase(cn.Name(), base)
}

func (cn *ClaimAtNormalAge) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.Claim = domain.ClaimAdjustment{}
	return &modified, nil
}
