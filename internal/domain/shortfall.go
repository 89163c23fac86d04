package domain

import (
	"github.com/shopspring/decimal"
)

// ShortfallInputs drive the retirement savings gap calculation.
// Amounts are won, rates are annual fractions.
type ShortfallInputs struct {
	CurrentAge        int `yaml:"current_age" json:"current_age"`
	RetireAge         int `yaml:"retire_age" json:"retire_age"`
	LifeExpectancyAge int `yaml:"life_expectancy_age" json:"life_expectancy_age"`

	TargetMonthlySpend     decimal.Decimal `yaml:"target_monthly_spend" json:"target_monthly_spend"`
	ExpectedPensionMonthly decimal.Decimal `yaml:"expected_pension_monthly" json:"expected_pension_monthly"`
	CurrentAssets          decimal.Decimal `yaml:"current_assets" json:"current_assets"`
	MonthlySavings         decimal.Decimal `yaml:"monthly_savings" json:"monthly_savings"`

	PreRetirementReturn  decimal.Decimal `yaml:"pre_retirement_return" json:"pre_retirement_return"`
	PostRetirementReturn decimal.Decimal `yaml:"post_retirement_return" json:"post_retirement_return"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
}

// Validate enforces currentAge < retireAge < lifeExpectancyAge
func (in ShortfallInputs) Validate() error {
	if in.CurrentAge >= in.RetireAge {
		return &ValidationError{Field: "retire_age", Message: "current age must be below retirement age", Err: ErrInvalidAgeOrder}
	}
	if in.RetireAge >= in.LifeExpectancyAge {
		return &ValidationError{Field: "life_expectancy_age", Message: "retirement age must be below life expectancy", Err: ErrInvalidAgeOrder}
	}
	if in.CurrentAge < 0 {
		return invalid("current_age", "cannot be negative")
	}
	minusOne := decimal.NewFromInt(-1)
	for name, r := range map[string]decimal.Decimal{
		"pre_retirement_return":  in.PreRetirementReturn,
		"post_retirement_return": in.PostRetirementReturn,
		"inflation_rate":         in.InflationRate,
	} {
		if r.LessThanOrEqual(minusOne) {
			return invalid(name, "must be greater than -100%%")
		}
	}
	return nil
}

// SavingsPoint is one year of the accumulation path
type SavingsPoint struct {
	YearOffset int             `yaml:"year_offset" json:"year_offset"`
	Age        int             `yaml:"age" json:"age"`
	Prepared   decimal.Decimal `yaml:"prepared" json:"prepared"`
	Ideal      decimal.Decimal `yaml:"ideal" json:"ideal"`
}

// ShortfallResult is the savings gap outcome. A negative Shortfall is a surplus.
type ShortfallResult struct {
	YearsToRetire               int             `yaml:"years_to_retire" json:"years_to_retire"`
	YearsInRetirement           int             `yaml:"years_in_retirement" json:"years_in_retirement"`
	InflationFactor             decimal.Decimal `yaml:"inflation_factor" json:"inflation_factor"`
	RequiredMonthlyAtRetirement decimal.Decimal `yaml:"required_monthly_at_retirement" json:"required_monthly_at_retirement"`
	RequiredNestEgg             decimal.Decimal `yaml:"required_nest_egg" json:"required_nest_egg"`
	PreparedAssets              decimal.Decimal `yaml:"prepared_assets" json:"prepared_assets"`
	Shortfall                   decimal.Decimal `yaml:"shortfall" json:"shortfall"`
	AdditionalMonthlySavings    decimal.Decimal `yaml:"additional_monthly_savings" json:"additional_monthly_savings"`
	Trajectory                  []SavingsPoint  `yaml:"trajectory" json:"trajectory"`
}
