package calculation

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// PENSION TAX ASSUMPTIONS:
//
// 1. Public pension income only; no other income is combined into the base.
// 2. The deduction schedule and brackets come from the policy table and are
//    not indexed for future years.
// 3. Local income tax is modelled as a flat multiplier on national tax.

// PensionTaxCalculator computes annual income tax on public pension receipts
type PensionTaxCalculator struct {
	Rules domain.PensionTaxRules
}

// NewPensionTaxCalculator creates a calculator from the policy tax rules
func NewPensionTaxCalculator(rules domain.PensionTaxRules) *PensionTaxCalculator {
	return &PensionTaxCalculator{Rules: rules}
}

// Deduction returns the pension income deduction, capped at the maximum
func (ptc *PensionTaxCalculator) Deduction(annualPension decimal.Decimal) decimal.Decimal {
	d := applyProgressive(ptc.Rules.DeductionTiers, annualPension)
	if ptc.Rules.MaxDeduction.IsPositive() && d.GreaterThan(ptc.Rules.MaxDeduction) {
		return ptc.Rules.MaxDeduction
	}
	return d
}

// TaxableBase is the pension income after both deductions
func (ptc *PensionTaxCalculator) TaxableBase(annualPension decimal.Decimal) decimal.Decimal {
	return annualPension.Sub(ptc.Deduction(annualPension)).Sub(ptc.Rules.BasicDeduction)
}

// CalculateAnnualTax returns floor-truncated tax including local surtax
func (ptc *PensionTaxCalculator) CalculateAnnualTax(annualPension decimal.Decimal) decimal.Decimal {
	base := ptc.TaxableBase(annualPension)
	if !base.IsPositive() {
		return zero
	}

	tax := zero
	for _, b := range ptc.Rules.Brackets {
		if b.UpTo.IsZero() || base.LessThanOrEqual(b.UpTo) {
			tax = base.Mul(b.Rate).Sub(b.Subtraction)
			break
		}
	}

	return nonNegative(tax.Mul(ptc.Rules.LocalSurtaxMultiplier)).Floor()
}
