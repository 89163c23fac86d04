package transform

import (
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SetIncome replaces the current monthly income
type SetIncome struct {
	Monthly decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set current monthly income to %s won", si.Monthly.StringFixed(0))
}

func (si *SetIncome) Validate(base *domain.NationalInputs) error {
	if si.Monthly.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("monthly income cannot be negative, got %s", si.Monthly), nil)
	}
	return requireBase(si.Name(), base)
}

func (si *SetIncome) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.CurrentMonthlyIncome = si.Monthly
	return &modified, nil
}

// AdjustWageGrowth changes the annual wage growth assumption
type AdjustWageGrowth struct {
	Rate decimal.Decimal
}

func (aw *AdjustWageGrowth) Name() string {
	return "adjust_wage_growth"
}

func (aw *AdjustWageGrowth) Description() string {
	return fmt.Sprintf("Change wage growth to %s%%", aw.Rate.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

func (aw *AdjustWageGrowth) Validate(base *domain.NationalInputs) error {
	if aw.Rate.LessThan(decimal.NewFromFloat(-0.10)) || aw.Rate.GreaterThan(decimal.NewFromFloat(0.20)) {
		return NewTransformError(aw.Name(), "validate", fmt.Sprintf("wage growth must be between -0.10 and 0.20, got %s", aw.Rate), nil)
	}
	return requireBase(aw.Name(), base)
}

func (aw *AdjustWageGrowth) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.WageGrowthRate = aw.Rate
	return &modified, nil
}

// SetPostRetireIncome sets the earned income received while drawing the
// benefit, which drives the earnings test
type SetPostRetireIncome struct {
	Monthly decimal.Decimal
}

func (sp *SetPostRetireIncome) Name() string {
	return "set_post_retire_income"
}

func (sp *SetPostRetireIncome) Description() string {
	return fmt.Sprintf("Earn %s won a month while receiving the benefit", sp.Monthly.StringFixed(0))
}

func (sp *SetPostRetireIncome) Validate(base *domain.NationalInputs) error {
	if sp.Monthly.IsNegative() {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("monthly income cannot be negative, got %s", sp.Monthly), nil)
	}
	return requireBase(sp.Name(), base)
}

func (sp *SetPostRetireIncome) Apply(base *domain.NationalInputs) (*domain.NationalInputs, error) {
	modified := base.Clone()
	modified.PostRetireMonthlyIncome = sp.Monthly
	return &modified, nil
}
