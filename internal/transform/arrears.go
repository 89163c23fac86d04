package transform

import (
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// BuyBackArrears marks every exclusion period as bought back
type BuyBackArrears struct{}

func (bb *BuyBackArrears) Name() string {
	return "buy_back_arrears"
}

func (bb *BuyBackArrears) Description() string {
	return "Pay arrears for every contribution gap"
}

func (bb *BuyBackArrears) Validate(base *domain.NationalInputs) error {
	if err := requireBase(bb.Name(), base); err != nil {
		return err
	}
	if len(base.ExclusionPeriods) == 0 {
		return NewTransformError(bb.Name(), "validate", "inputs have no exclusion periods", nil)
	}
	return nil
}

func (bb *BuyBackArrears) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	for i := range modified.ExclusionPeriods {
		modified.ExclusionPeriods[i].IsArrearsPayment = true
	}
	return &modified, nil
}

// SkipArrears leaves every exclusion period unpaid
type SkipArrears struct{}

func (sa *SkipArrears) Name() string {
	return "skip_arrears"
}

func (sa *SkipArrears) Description() string {
	return "Leave every contribution gap unpaid"
}

func (sa *SkipArrears) Validate(base *domain.NationalInputs) error {
	return requireBase(sa.Name(), base)
}

func (sa *SkipArrears) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.ExclusionPeriods = domain.WithoutArrears(base.ExclusionPeriods)
	return &modified, nil
}

// AddGap appends a contribution gap after the existing periods, so any
// earlier overlapping period still decides those months
type AddGap struct {
	Period domain.ExclusionPeriod
}

func (ag *AddGap) Name() string {
	return "add_gap"
}

func (ag *AddGap) Description() string {
	p := ag.Period
	kind := "unpaid"
	if p.IsArrearsPayment {
		kind = "bought back"
	}
	return fmt.Sprintf("Add a %s gap %04d-%02d to %04d-%02d", kind, p.StartYear, p.StartMonth, p.EndYear, p.EndMonth)
}

func (ag *AddGap) Validate(base *domain.NationalInputs) error {
	p := ag.Period
	if p.StartMonth < 1 || p.StartMonth > 12 || p.EndMonth < 1 || p.EndMonth > 12 {
		return NewTransformError(ag.Name(), "validate", "months must be between 1 and 12", nil)
	}
	if domain.MonthIndex(p.EndYear, p.EndMonth) < domain.MonthIndex(p.StartYear, p.StartMonth) {
		return NewTransformError(ag.Name(), "validate", "gap ends before it starts", nil)
	}
	return requireBase(ag.Name(), base)
}

func (ag *AddGap) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.ExclusionPeriods = append(modified.ExclusionPeriods, ag.Period)
	return &modified, nil
}
