package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request bundles any of the three independent calculations
type Request struct {
	National     *NationalInputs     `yaml:"national,omitempty" json:"national,omitempty"`
	BasicPension *BasicPensionInputs `yaml:"basic_pension,omitempty" json:"basic_pension,omitempty"`
	Shortfall    *ShortfallInputs    `yaml:"shortfall,omitempty" json:"shortfall,omitempty"`
}

// IsEmpty reports whether no section was provided
func (r *Request) IsEmpty() bool {
	return r.National == nil && r.BasicPension == nil && r.Shortfall == nil
}

// ClaimOption is one claiming age evaluated by the claim-timing comparison
type ClaimOption struct {
	Label          string          `yaml:"label" json:"label"`
	EarlyYears     int             `yaml:"early_years" json:"early_years"`
	DeferYears     int             `yaml:"defer_years" json:"defer_years"`
	ClaimAge       int             `yaml:"claim_age" json:"claim_age"`
	MonthlyBenefit decimal.Decimal `yaml:"monthly_benefit" json:"monthly_benefit"`
	LifetimeTotal  decimal.Decimal `yaml:"lifetime_total" json:"lifetime_total"`

	MonthlyDiffFromBase  decimal.Decimal `yaml:"monthly_diff_from_base" json:"monthly_diff_from_base"`
	LifetimeDiffFromBase decimal.Decimal `yaml:"lifetime_diff_from_base" json:"lifetime_diff_from_base"`
	// BreakEvenAge is the age at which this option's cumulative receipts
	// cross the base option's; zero when they never cross before 100.
	BreakEvenAge int `yaml:"break_even_age" json:"break_even_age"`
}

// ClaimComparison compares claiming ages against the normal claim age
type ClaimComparison struct {
	LifeExpectancyAge int           `yaml:"life_expectancy_age" json:"life_expectancy_age"`
	Base              ClaimOption   `yaml:"base" json:"base"`
	Alternatives      []ClaimOption `yaml:"alternatives" json:"alternatives"`
	Best              string        `yaml:"best" json:"best"`
	Recommendations   []string      `yaml:"recommendations" json:"recommendations"`
}

// Report is what the CLI, TUI and HTTP surfaces render
type Report struct {
	CalculationID string    `yaml:"calculation_id" json:"calculation_id"`
	GeneratedAt   time.Time `yaml:"generated_at" json:"generated_at"`
	PolicyYear    int       `yaml:"policy_year" json:"policy_year"`

	National      *NationalEstimate   `yaml:"national,omitempty" json:"national,omitempty"`
	NationalError string              `yaml:"national_error,omitempty" json:"national_error,omitempty"`
	BasicPension  *BasicPensionResult `yaml:"basic_pension,omitempty" json:"basic_pension,omitempty"`
	Shortfall     *ShortfallResult    `yaml:"shortfall,omitempty" json:"shortfall,omitempty"`
	ClaimTiming   *ClaimComparison    `yaml:"claim_timing,omitempty" json:"claim_timing,omitempty"`
}
