package calculation

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ShortfallCalculator sizes the retirement nest egg against projected savings
type ShortfallCalculator struct{}

// NewShortfallCalculator creates a shortfall calculator
func NewShortfallCalculator() *ShortfallCalculator {
	return &ShortfallCalculator{}
}

// Calculate validates age ordering and computes the savings gap
func (sc *ShortfallCalculator) Calculate(in domain.ShortfallInputs) (*domain.ShortfallResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	yearsToRetire := in.RetireAge - in.CurrentAge
	yearsInRetirement := in.LifeExpectancyAge - in.RetireAge

	gap := nonNegative(in.TargetMonthlySpend.Sub(in.ExpectedPensionMonthly))
	inflationFactor := compound(in.InflationRate, yearsToRetire)
	requiredMonthly := gap.Mul(inflationFactor)

	realRate := one.Add(in.PostRetirementReturn).Div(one.Add(in.InflationRate)).Sub(one)
	nestEgg := annuityDuePresentValue(requiredMonthly, realRate.Div(twelve), yearsInRetirement*12)

	monthlyPre := in.PreRetirementReturn.Div(twelve)
	monthsToRetire := yearsToRetire * 12
	prepared := preparedAt(in.CurrentAssets, in.MonthlySavings, monthlyPre, monthsToRetire)

	shortfall := nestEgg.Sub(prepared)
	additional := zero
	if shortfall.IsPositive() && monthsToRetire > 0 {
		additional = sinkingFundPayment(shortfall, monthlyPre, monthsToRetire)
	}

	result := &domain.ShortfallResult{
		YearsToRetire:               yearsToRetire,
		YearsInRetirement:           yearsInRetirement,
		InflationFactor:             inflationFactor.Round(6),
		RequiredMonthlyAtRetirement: requiredMonthly.Floor(),
		RequiredNestEgg:             nestEgg.Floor(),
		PreparedAssets:              prepared.Floor(),
		Shortfall:                   shortfall.Floor(),
		AdditionalMonthlySavings:    additional.Ceil(),
	}

	ideal := in.MonthlySavings.Add(additional)
	for i := 0; i <= yearsToRetire; i++ {
		months := i * 12
		result.Trajectory = append(result.Trajectory, domain.SavingsPoint{
			YearOffset: i,
			Age:        in.CurrentAge + i,
			Prepared:   preparedAt(in.CurrentAssets, in.MonthlySavings, monthlyPre, months).Round(0),
			Ideal:      preparedAt(in.CurrentAssets, ideal, monthlyPre, months).Round(0),
		})
	}

	return result, nil
}

// annuityDuePresentValue is the lump sum funding payment at the start of each
// of n months at monthly rate r.
func annuityDuePresentValue(payment, r decimal.Decimal, n int) decimal.Decimal {
	if nearZero(r) {
		return payment.Mul(decimal.NewFromInt(int64(n)))
	}
	discount := one.Sub(compound(r, -n)).Div(r)
	return payment.Mul(discount).Mul(one.Add(r))
}

// preparedAt compounds assets and an ordinary savings annuity for n months
func preparedAt(assets, monthly, r decimal.Decimal, n int) decimal.Decimal {
	grown := assets.Mul(compound(r, n))
	if nearZero(r) {
		return grown.Add(monthly.Mul(decimal.NewFromInt(int64(n))))
	}
	return grown.Add(monthly.Mul(compound(r, n).Sub(one)).Div(r))
}

// sinkingFundPayment solves the ordinary annuity FV equation for the payment
func sinkingFundPayment(target, r decimal.Decimal, n int) decimal.Decimal {
	if nearZero(r) {
		return target.Div(decimal.NewFromInt(int64(n)))
	}
	return target.Mul(r).Div(compound(r, n).Sub(one))
}
