package breakeven

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizeRetireAge   OptimizationTarget = "retire_age"
	OptimizeIncome      OptimizationTarget = "income"
	OptimizeClaimTiming OptimizationTarget = "claim_timing"
	OptimizeAll         OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchBenefit     OptimizationGoal = "match_benefit"     // Reach a target monthly benefit
	GoalMaximizeMonthly  OptimizationGoal = "maximize_monthly"  // Highest monthly benefit
	GoalMaximizeLifetime OptimizationGoal = "maximize_lifetime" // Highest receipts to life expectancy
)

// Constraints define bounds for optimization parameters. Nil bounds fall
// back to defaults derived from the base inputs and the policy table.
type Constraints struct {
	MinRetireAge *int `json:"min_retire_age,omitempty"`
	MaxRetireAge *int `json:"max_retire_age,omitempty"`

	MinMonthlyIncome *decimal.Decimal `json:"min_monthly_income,omitempty"`
	MaxMonthlyIncome *decimal.Decimal `json:"max_monthly_income,omitempty"`

	// Claim offsets are years from the normal claim age; negative is early
	MinClaimOffset *int `json:"min_claim_offset,omitempty"`
	MaxClaimOffset *int `json:"max_claim_offset,omitempty"`

	// Monthly benefit target for the match_benefit goal
	TargetMonthlyBenefit *decimal.Decimal `json:"target_monthly_benefit,omitempty"`

	// Horizon for lifetime totals; zero uses the inputs or the policy default
	LifeExpectancyAge int `json:"life_expectancy_age,omitempty"`
}

// DefaultConstraints returns the full early/defer window of the policy
func DefaultConstraints(policy *domain.PolicyConstants) Constraints {
	minOffset := -policy.National.MaxEarlyYears
	maxOffset := policy.National.MaxDeferYears
	return Constraints{
		MinClaimOffset: &minOffset,
		MaxClaimOffset: &maxOffset,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Base          *domain.NationalInputs
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence tolerance in won for bisection
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Target          OptimizationTarget  `json:"target"`
	Goal            OptimizationGoal    `json:"goal"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Optimized parameters
	OptimalRetireAge     *int             `json:"optimal_retire_age,omitempty"`
	OptimalMonthlyIncome *decimal.Decimal `json:"optimal_monthly_income,omitempty"`
	OptimalClaimOffset   *int             `json:"optimal_claim_offset,omitempty"`

	// Results at optimal parameters
	Estimate       *domain.NationalEstimate `json:"estimate"`
	MonthlyBenefit decimal.Decimal          `json:"monthly_benefit"`
	ReceiptAge     int                      `json:"receipt_age"`
	LifetimeTotal  decimal.Decimal          `json:"lifetime_total"`

	// Comparison to the unmodified inputs
	BaseMonthlyBenefit   decimal.Decimal `json:"base_monthly_benefit"`
	MonthlyDiffFromBase  decimal.Decimal `json:"monthly_diff_from_base"`
	LifetimeDiffFromBase decimal.Decimal `json:"lifetime_diff_from_base"`
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	BestByMonthly   *OptimizationResult  `json:"best_by_monthly,omitempty"`
	BestByLifetime  *OptimizationResult  `json:"best_by_lifetime,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm     string          // "bisection" for income, grid search otherwise
	Tolerance     decimal.Decimal // Convergence tolerance in won
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:     "bisection",
		Tolerance:     decimal.NewFromInt(1000), // 1,000 won a month
		MaxIterations: 50,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinRetireAge != nil && c.MaxRetireAge != nil && *c.MinRetireAge > *c.MaxRetireAge {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_retire_age cannot be greater than max_retire_age",
		}
	}

	if c.MinMonthlyIncome != nil && c.MaxMonthlyIncome != nil && c.MinMonthlyIncome.GreaterThan(*c.MaxMonthlyIncome) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_monthly_income cannot be greater than max_monthly_income",
		}
	}
	if c.MinMonthlyIncome != nil && c.MinMonthlyIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_monthly_income cannot be negative",
		}
	}

	if c.MinClaimOffset != nil && c.MaxClaimOffset != nil && *c.MinClaimOffset > *c.MaxClaimOffset {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_claim_offset cannot be greater than max_claim_offset",
		}
	}

	if c.TargetMonthlyBenefit != nil && !c.TargetMonthlyBenefit.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_monthly_benefit must be positive",
		}
	}

	if c.LifeExpectancyAge < 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "life_expectancy_age cannot be negative",
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
