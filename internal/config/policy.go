package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed policy_2026.yaml
var defaultPolicyYAML []byte

// PolicyLoader loads and validates policy constant tables
type PolicyLoader struct{}

// NewPolicyLoader creates a new policy loader
func NewPolicyLoader() *PolicyLoader {
	return &PolicyLoader{}
}

// DefaultPolicyYAML returns the embedded policy document
func DefaultPolicyYAML() []byte {
	out := make([]byte, len(defaultPolicyYAML))
	copy(out, defaultPolicyYAML)
	return out
}

// LoadDefault parses the embedded 2026 policy table
func (pl *PolicyLoader) LoadDefault() (*domain.PolicyConstants, error) {
	return pl.Parse(defaultPolicyYAML)
}

// LoadFromFile loads a policy table from a YAML file
func (pl *PolicyLoader) LoadFromFile(filename string) (*domain.PolicyConstants, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", filename, err)
	}
	return pl.Parse(data)
}

// Load returns the file's table when filename is set and the embedded one
// otherwise.
func (pl *PolicyLoader) Load(filename string) (*domain.PolicyConstants, error) {
	if filename == "" {
		return pl.LoadDefault()
	}
	return pl.LoadFromFile(filename)
}

// Parse decodes and validates a policy document
func (pl *PolicyLoader) Parse(data []byte) (*domain.PolicyConstants, error) {
	var policy domain.PolicyConstants
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}
	if err := pl.Validate(&policy); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}
	return &policy, nil
}

// Validate checks the table is internally consistent
func (pl *PolicyLoader) Validate(p *domain.PolicyConstants) error {
	if err := pl.validateNational(&p.National); err != nil {
		return fmt.Errorf("national_pension: %w", err)
	}
	if err := pl.validateTax(&p.Tax); err != nil {
		return fmt.Errorf("pension_tax: %w", err)
	}
	if err := pl.validateBasicPension(&p.BasicPension); err != nil {
		return fmt.Errorf("basic_pension: %w", err)
	}
	if p.Economy.InflationRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("economy: inflation_rate must be greater than -100%%")
	}
	if p.Economy.LifeExpectancyAge <= 0 {
		return fmt.Errorf("economy: life_expectancy_age must be positive")
	}
	return nil
}

func (pl *PolicyLoader) validateNational(n *domain.NationalPensionRules) error {
	if !n.AValue.IsPositive() {
		return fmt.Errorf("a_value must be positive")
	}
	if !n.IncomeFloorMonthly.IsPositive() || n.IncomeCapMonthly.LessThanOrEqual(n.IncomeFloorMonthly) {
		return fmt.Errorf("income cap %s must exceed a positive floor %s", n.IncomeCapMonthly, n.IncomeFloorMonthly)
	}
	if n.FullCareerMonths <= 0 {
		return fmt.Errorf("full_career_months must be positive")
	}
	if n.MinimumPaidMonths < 0 || n.PeakWindowYears < 0 {
		return fmt.Errorf("minimum_paid_months and peak_window_years cannot be negative")
	}
	for year, f := range n.RevaluationFactors {
		if !f.IsPositive() {
			return fmt.Errorf("revaluation factor for %d must be positive", year)
		}
	}
	for year, r := range n.PremiumRates {
		if r.IsNegative() {
			return fmt.Errorf("premium rate for %d cannot be negative", year)
		}
	}
	for i, t := range n.ReplacementRates.Tiers {
		if t.ToYear < t.FromYear {
			return fmt.Errorf("replacement tier %d ends before it starts", i)
		}
		if t.Rate.Sub(t.AnnualStep.Mul(decimal.NewFromInt(int64(t.ToYear - t.FromYear)))).IsNegative() {
			return fmt.Errorf("replacement tier %d steps below zero", i)
		}
	}
	if n.EarlyRatePerYear.IsNegative() || n.DeferRatePerYear.IsNegative() {
		return fmt.Errorf("claim adjustment rates cannot be negative")
	}
	if n.MaxEarlyYears < 0 || n.MaxDeferYears < 0 {
		return fmt.Errorf("claim adjustment limits cannot be negative")
	}
	if n.NormalClaimAge <= 0 {
		return fmt.Errorf("normal_claim_age must be positive")
	}
	if err := validateTiers(n.EarningsTest.Tiers); err != nil {
		return fmt.Errorf("earnings_test: %w", err)
	}
	share := n.EarningsTest.MaxReductionShare
	if share.IsNegative() || share.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("earnings_test.max_reduction_share must be between 0 and 1")
	}
	return nil
}

func (pl *PolicyLoader) validateTax(t *domain.PensionTaxRules) error {
	if err := validateTiers(t.DeductionTiers); err != nil {
		return fmt.Errorf("deduction_tiers: %w", err)
	}
	if len(t.Brackets) == 0 {
		return fmt.Errorf("at least one tax bracket is required")
	}
	prev := decimal.Zero
	for i, b := range t.Brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("bracket %d rate cannot be negative", i)
		}
		if b.UpTo.IsZero() {
			if i != len(t.Brackets)-1 {
				return fmt.Errorf("only the last bracket may be open-ended")
			}
			continue
		}
		if b.UpTo.LessThanOrEqual(prev) {
			return fmt.Errorf("bracket %d upper bound must increase", i)
		}
		prev = b.UpTo
	}
	if !t.LocalSurtaxMultiplier.IsPositive() {
		return fmt.Errorf("local_surtax_multiplier must be positive")
	}
	return nil
}

func (pl *PolicyLoader) validateBasicPension(b *domain.BasicPensionRules) error {
	if !b.ThresholdSingle.IsPositive() || !b.ThresholdCouple.IsPositive() {
		return fmt.Errorf("thresholds must be positive")
	}
	if !b.FullAmount.IsPositive() {
		return fmt.Errorf("full_amount must be positive")
	}
	for _, r := range []domain.Region{domain.RegionMetro, domain.RegionCity, domain.RegionRural} {
		if _, ok := b.PropertyDeductions[r]; !ok {
			return fmt.Errorf("property deduction for region %q is missing", r)
		}
	}
	if b.AnnualConversionRate.IsNegative() {
		return fmt.Errorf("annual_conversion_rate cannot be negative")
	}
	return nil
}

// validateTiers requires increasing bounds with only the last band open
func validateTiers(tiers []domain.ProgressiveTier) error {
	prev := decimal.Zero
	for i, t := range tiers {
		if t.Rate.IsNegative() {
			return fmt.Errorf("tier %d rate cannot be negative", i)
		}
		if t.UpTo.IsZero() {
			if i != len(tiers)-1 {
				return fmt.Errorf("only the last tier may be open-ended")
			}
			continue
		}
		if t.UpTo.LessThanOrEqual(prev) {
			return fmt.Errorf("tier %d upper bound must increase", i)
		}
		prev = t.UpTo
	}
	return nil
}
