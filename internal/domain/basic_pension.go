package domain

import (
	"github.com/shopspring/decimal"
)

// HouseholdType for the basic pension means test
type HouseholdType string

const (
	HouseholdSingle HouseholdType = "single"
	HouseholdCouple HouseholdType = "couple"
)

// Region keys the housing property deduction
type Region string

const (
	RegionMetro Region = "metro"
	RegionCity  Region = "city"
	RegionRural Region = "rural"
)

// BasicPensionInputs are monthly incomes and asset values in won
type BasicPensionInputs struct {
	Household     HouseholdType `yaml:"household" json:"household"`
	SpouseWorking bool          `yaml:"spouse_working" json:"spouse_working"`
	Region        Region        `yaml:"region" json:"region"`

	EarnedIncome       decimal.Decimal `yaml:"earned_income" json:"earned_income"`
	SpouseEarnedIncome decimal.Decimal `yaml:"spouse_earned_income" json:"spouse_earned_income"`
	PensionIncome      decimal.Decimal `yaml:"pension_income" json:"pension_income"`
	OtherIncome        decimal.Decimal `yaml:"other_income" json:"other_income"`

	GeneralProperty   decimal.Decimal `yaml:"general_property" json:"general_property"`
	FinancialProperty decimal.Decimal `yaml:"financial_property" json:"financial_property"`
	Debt              decimal.Decimal `yaml:"debt" json:"debt"`
	LuxuryAssetValue  decimal.Decimal `yaml:"luxury_asset_value" json:"luxury_asset_value"`
}

// Validate checks enum fields and signs
func (in BasicPensionInputs) Validate() error {
	switch in.Household {
	case HouseholdSingle, HouseholdCouple:
	default:
		return invalid("household", "must be %q or %q, got %q", HouseholdSingle, HouseholdCouple, in.Household)
	}
	switch in.Region {
	case RegionMetro, RegionCity, RegionRural:
	default:
		return invalid("region", "must be metro, city or rural, got %q", in.Region)
	}
	fields := map[string]decimal.Decimal{
		"earned_income":        in.EarnedIncome,
		"spouse_earned_income": in.SpouseEarnedIncome,
		"pension_income":       in.PensionIncome,
		"other_income":         in.OtherIncome,
		"general_property":     in.GeneralProperty,
		"financial_property":   in.FinancialProperty,
		"debt":                 in.Debt,
		"luxury_asset_value":   in.LuxuryAssetValue,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return invalid(name, "cannot be negative")
		}
	}
	return nil
}

// IncomeBreakdown splits recognized income into its three sources
type IncomeBreakdown struct {
	Income   decimal.Decimal `yaml:"income" json:"income"`
	Property decimal.Decimal `yaml:"property" json:"property"`
	Luxury   decimal.Decimal `yaml:"luxury" json:"luxury"`
}

// BasicPensionResult is the means-test outcome
type BasicPensionResult struct {
	RecognizedIncome        decimal.Decimal `yaml:"recognized_income" json:"recognized_income"`
	Threshold               decimal.Decimal `yaml:"threshold" json:"threshold"`
	Eligible                bool            `yaml:"eligible" json:"eligible"`
	BaseBenefit             decimal.Decimal `yaml:"base_benefit" json:"base_benefit"`
	IncomeOffsetReduction   decimal.Decimal `yaml:"income_offset_reduction" json:"income_offset_reduction"`
	EstimatedMonthlyBenefit decimal.Decimal `yaml:"estimated_monthly_benefit" json:"estimated_monthly_benefit"`
	Breakdown               IncomeBreakdown `yaml:"breakdown" json:"breakdown"`
}
