package domain

import (
	"github.com/shopspring/decimal"
)

// PolicyConstants is the versioned regime table every calculator consumes.
// It is loaded once (see config.PolicyLoader) and never mutated afterwards;
// calculators receive it by pointer and only read from it.
type PolicyConstants struct {
	Metadata     PolicyMetadata       `yaml:"metadata" json:"metadata"`
	National     NationalPensionRules `yaml:"national_pension" json:"national_pension"`
	Tax          PensionTaxRules      `yaml:"pension_tax" json:"pension_tax"`
	BasicPension BasicPensionRules    `yaml:"basic_pension" json:"basic_pension"`
	Economy      EconomyAssumptions   `yaml:"economy" json:"economy"`
}

// PolicyMetadata describes where the table came from
type PolicyMetadata struct {
	PolicyYear  int    `yaml:"policy_year" json:"policy_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// NationalPensionRules holds the national pension regime parameters
type NationalPensionRules struct {
	SystemStartYear    int             `yaml:"system_start_year" json:"system_start_year"`
	AValue             decimal.Decimal `yaml:"a_value" json:"a_value"`
	IncomeCapMonthly   decimal.Decimal `yaml:"income_cap_monthly" json:"income_cap_monthly"`
	IncomeFloorMonthly decimal.Decimal `yaml:"income_floor_monthly" json:"income_floor_monthly"`

	RevaluationFactors map[int]decimal.Decimal `yaml:"revaluation_factors" json:"revaluation_factors"`

	PremiumRates              map[int]decimal.Decimal `yaml:"premium_rates" json:"premium_rates"`
	PremiumRateBeforeSchedule decimal.Decimal         `yaml:"premium_rate_before_schedule" json:"premium_rate_before_schedule"`
	PremiumRateAfterSchedule  decimal.Decimal         `yaml:"premium_rate_after_schedule" json:"premium_rate_after_schedule"`
	ArrearsRateFloorYear      int                     `yaml:"arrears_rate_floor_year" json:"arrears_rate_floor_year"`

	ReplacementRates      ReplacementSchedule `yaml:"replacement_rates" json:"replacement_rates"`
	CreditReplacementRate decimal.Decimal     `yaml:"credit_replacement_rate" json:"credit_replacement_rate"`
	FullCareerMonths      int                 `yaml:"full_career_months" json:"full_career_months"`
	MinimumPaidMonths     int                 `yaml:"minimum_paid_months" json:"minimum_paid_months"`
	PeakWindowYears       int                 `yaml:"peak_window_years" json:"peak_window_years"`

	Credits    CreditRules    `yaml:"credits" json:"credits"`
	Dependents DependentRules `yaml:"dependents" json:"dependents"`

	EarlyRatePerYear decimal.Decimal `yaml:"early_rate_per_year" json:"early_rate_per_year"`
	DeferRatePerYear decimal.Decimal `yaml:"defer_rate_per_year" json:"defer_rate_per_year"`
	MaxEarlyYears    int             `yaml:"max_early_years" json:"max_early_years"`
	MaxDeferYears    int             `yaml:"max_defer_years" json:"max_defer_years"`
	NormalClaimAge   int             `yaml:"normal_claim_age" json:"normal_claim_age"`

	EarningsTest EarningsTestRules `yaml:"earnings_test" json:"earnings_test"`
}

// RevaluationFactor returns the factor for a contribution year.
// Years missing from the table are treated as already in present value (1.0).
func (r NationalPensionRules) RevaluationFactor(year int) decimal.Decimal {
	if f, ok := r.RevaluationFactors[year]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

// PremiumRate returns the contribution rate for a year. Years before the
// scheduled range use the pre-schedule rate, years after it the final rate.
func (r NationalPensionRules) PremiumRate(year int) decimal.Decimal {
	if rate, ok := r.PremiumRates[year]; ok {
		return rate
	}
	first := 0
	for y := range r.PremiumRates {
		if first == 0 || y < first {
			first = y
		}
	}
	if first != 0 && year < first {
		return r.PremiumRateBeforeSchedule
	}
	return r.PremiumRateAfterSchedule
}

// ReplacementSchedule is the piecewise replacement-rate function by
// contribution vintage. Years not covered by any tier use CurrentRate.
type ReplacementSchedule struct {
	Tiers       []ReplacementTier `yaml:"tiers" json:"tiers"`
	CurrentRate decimal.Decimal   `yaml:"current_rate" json:"current_rate"`
}

// ReplacementTier covers FromYear..ToYear inclusive. AnnualStep is subtracted
// once for every year elapsed since FromYear.
type ReplacementTier struct {
	FromYear   int             `yaml:"from_year" json:"from_year"`
	ToYear     int             `yaml:"to_year" json:"to_year"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	AnnualStep decimal.Decimal `yaml:"annual_step" json:"annual_step"`
}

// RateFor returns the replacement rate applying to contributions made in year
func (s ReplacementSchedule) RateFor(year int) decimal.Decimal {
	for _, t := range s.Tiers {
		if year >= t.FromYear && year <= t.ToYear {
			elapsed := decimal.NewFromInt(int64(year - t.FromYear))
			return t.Rate.Sub(t.AnnualStep.Mul(elapsed))
		}
	}
	return s.CurrentRate
}

// CreditRules lists credited months granted without contributions
type CreditRules struct {
	MilitaryMonths       int `yaml:"military_months" json:"military_months"`
	FirstChildMonths     int `yaml:"first_child_months" json:"first_child_months"`
	SecondChildMonths    int `yaml:"second_child_months" json:"second_child_months"`
	ThirdPlusChildMonths int `yaml:"third_plus_child_months" json:"third_plus_child_months"`
}

// DependentRules contains the annual dependent add-on amounts
type DependentRules struct {
	SpouseAnnual      decimal.Decimal `yaml:"spouse_annual" json:"spouse_annual"`
	ChildParentAnnual decimal.Decimal `yaml:"child_parent_annual" json:"child_parent_annual"`
}

// EarningsTestRules configures the in-work benefit reduction
type EarningsTestRules struct {
	LimitMonthly      decimal.Decimal   `yaml:"limit_monthly" json:"limit_monthly"`
	Tiers             []ProgressiveTier `yaml:"tiers" json:"tiers"`
	MaxReductionShare decimal.Decimal   `yaml:"max_reduction_share" json:"max_reduction_share"`
}

// ProgressiveTier is one band of a marginal schedule. UpTo is the cumulative
// upper bound of the band; a zero UpTo marks the open-ended top band.
type ProgressiveTier struct {
	UpTo decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// PensionTaxRules holds the pension income tax schedule
type PensionTaxRules struct {
	DeductionTiers        []ProgressiveTier `yaml:"deduction_tiers" json:"deduction_tiers"`
	MaxDeduction          decimal.Decimal   `yaml:"max_deduction" json:"max_deduction"`
	BasicDeduction        decimal.Decimal   `yaml:"basic_deduction" json:"basic_deduction"`
	Brackets              []TaxBracket      `yaml:"brackets" json:"brackets"`
	LocalSurtaxMultiplier decimal.Decimal   `yaml:"local_surtax_multiplier" json:"local_surtax_multiplier"`
}

// TaxBracket uses the "rate minus progressive subtraction" form.
// A zero UpTo marks the top bracket.
type TaxBracket struct {
	UpTo        decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`
	Subtraction decimal.Decimal `yaml:"subtraction" json:"subtraction"`
}

// BasicPensionRules holds the means-test thresholds
type BasicPensionRules struct {
	ThresholdSingle         decimal.Decimal            `yaml:"threshold_single" json:"threshold_single"`
	ThresholdCouple         decimal.Decimal            `yaml:"threshold_couple" json:"threshold_couple"`
	FullAmount              decimal.Decimal            `yaml:"full_amount" json:"full_amount"`
	CoupleReductionShare    decimal.Decimal            `yaml:"couple_reduction_share" json:"couple_reduction_share"`
	MinimumBenefitShare     decimal.Decimal            `yaml:"minimum_benefit_share" json:"minimum_benefit_share"`
	EarnedIncomeDeduction   decimal.Decimal            `yaml:"earned_income_deduction" json:"earned_income_deduction"`
	EarnedIncomeRecognition decimal.Decimal            `yaml:"earned_income_recognition" json:"earned_income_recognition"`
	PropertyDeductions      map[Region]decimal.Decimal `yaml:"property_deductions" json:"property_deductions"`
	FinancialDeduction      decimal.Decimal            `yaml:"financial_deduction" json:"financial_deduction"`
	AnnualConversionRate    decimal.Decimal            `yaml:"annual_conversion_rate" json:"annual_conversion_rate"`
	LuxuryAssetThreshold    decimal.Decimal            `yaml:"luxury_asset_threshold" json:"luxury_asset_threshold"`
	BenefitTruncationUnit   decimal.Decimal            `yaml:"benefit_truncation_unit" json:"benefit_truncation_unit"`
}

// Threshold returns the recognized-income limit for a household type
func (r BasicPensionRules) Threshold(h HouseholdType) decimal.Decimal {
	if h == HouseholdCouple {
		return r.ThresholdCouple
	}
	return r.ThresholdSingle
}

// EconomyAssumptions are the default macro rates
type EconomyAssumptions struct {
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	InvestmentReturnRate decimal.Decimal `yaml:"investment_return_rate" json:"investment_return_rate"`
	LifeExpectancyAge    int             `yaml:"life_expectancy_age" json:"life_expectancy_age"`
}
