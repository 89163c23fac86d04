package calculation

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CreditMonths totals the military and childbirth credits
func CreditMonths(rules domain.CreditRules, military bool, childCount int) int {
	months := 0
	if military {
		months += rules.MilitaryMonths
	}
	if childCount >= 1 {
		months += rules.FirstChildMonths
	}
	if childCount >= 2 {
		months += rules.SecondChildMonths
	}
	if childCount >= 3 {
		months += rules.ThirdPlusChildMonths * (childCount - 2)
	}
	return months
}

// DependentAddOn returns the annual dependent add-on
func DependentAddOn(rules domain.DependentRules, deps domain.Dependents) decimal.Decimal {
	total := zero
	if deps.Spouse {
		total = total.Add(rules.SpouseAnnual)
	}
	people := decimal.NewFromInt(int64(deps.Children + deps.Parents))
	return total.Add(rules.ChildParentAnnual.Mul(people))
}

// ApplyClaimAdjustment scales the annual benefit for early or deferred
// claiming. Early reduction applies to the whole amount including the
// dependent add-on; the deferral bonus applies to the benefit without it.
func ApplyClaimAdjustment(yearly, addOn decimal.Decimal, claim domain.ClaimAdjustment, rules domain.NationalPensionRules) decimal.Decimal {
	switch {
	case claim.EarlyYears > 0:
		factor := one.Sub(rules.EarlyRatePerYear.Mul(decimal.NewFromInt(int64(claim.EarlyYears))))
		return yearly.Mul(nonNegative(factor))
	case claim.DeferYears > 0:
		bonus := one.Add(rules.DeferRatePerYear.Mul(decimal.NewFromInt(int64(claim.DeferYears))))
		return yearly.Sub(addOn).Mul(bonus).Add(addOn)
	default:
		return yearly
	}
}

// EarningsTestReduction is the monthly reduction for post-retirement income
// above the limit, capped at a share of the unreduced monthly benefit.
func EarningsTestReduction(rules domain.EarningsTestRules, postRetireMonthly, monthlyBenefit decimal.Decimal) decimal.Decimal {
	if !postRetireMonthly.GreaterThan(rules.LimitMonthly) {
		return zero
	}
	excess := postRetireMonthly.Sub(rules.LimitMonthly)
	reduction := applyProgressive(rules.Tiers, excess)
	ceiling := nonNegative(monthlyBenefit).Mul(rules.MaxReductionShare)
	return decimal.Min(reduction, ceiling)
}
