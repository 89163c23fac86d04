package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeHistoryMode selects how contribution history is reconstructed
type IncomeHistoryMode string

const (
	// ModeHistoricalSweep interpolates every past year between an initial
	// salary and the current income.
	ModeHistoricalSweep IncomeHistoryMode = "historical_sweep"
	// ModeHybrid trusts caller-supplied aggregates for the past and only
	// projects forward.
	ModeHybrid IncomeHistoryMode = "hybrid"
)

// HistoricalSweepInputs is the payload for ModeHistoricalSweep
type HistoricalSweepInputs struct {
	InitialSalary decimal.Decimal `yaml:"initial_salary" json:"initial_salary"`
}

// HybridInputs is the payload for ModeHybrid
type HybridInputs struct {
	TotalPaidMonths      int             `yaml:"total_paid_months" json:"total_paid_months"`
	AverageMonthlyIncome decimal.Decimal `yaml:"average_monthly_income" json:"average_monthly_income"`
}

// IncomeHistory is a tagged union: exactly the payload named by Mode is set.
type IncomeHistory struct {
	Mode   IncomeHistoryMode      `yaml:"mode" json:"mode"`
	Sweep  *HistoricalSweepInputs `yaml:"historical_sweep,omitempty" json:"historical_sweep,omitempty"`
	Hybrid *HybridInputs          `yaml:"hybrid,omitempty" json:"hybrid,omitempty"`
}

// SweepHistory builds a historical-sweep history
func SweepHistory(initialSalary decimal.Decimal) IncomeHistory {
	return IncomeHistory{Mode: ModeHistoricalSweep, Sweep: &HistoricalSweepInputs{InitialSalary: initialSalary}}
}

// HybridHistory builds a hybrid history from settled aggregates
func HybridHistory(totalPaidMonths int, averageMonthlyIncome decimal.Decimal) IncomeHistory {
	return IncomeHistory{Mode: ModeHybrid, Hybrid: &HybridInputs{
		TotalPaidMonths:      totalPaidMonths,
		AverageMonthlyIncome: averageMonthlyIncome,
	}}
}

// Validate checks the union is well formed
func (h IncomeHistory) Validate() error {
	switch h.Mode {
	case ModeHistoricalSweep:
		if h.Sweep == nil {
			return invalid("income_history.historical_sweep", "payload is required for mode %s", h.Mode)
		}
		if h.Hybrid != nil {
			return invalid("income_history.hybrid", "must be empty for mode %s", h.Mode)
		}
		if h.Sweep.InitialSalary.IsNegative() {
			return invalid("income_history.historical_sweep.initial_salary", "cannot be negative")
		}
	case ModeHybrid:
		if h.Hybrid == nil {
			return invalid("income_history.hybrid", "payload is required for mode %s", h.Mode)
		}
		if h.Sweep != nil {
			return invalid("income_history.historical_sweep", "must be empty for mode %s", h.Mode)
		}
		if h.Hybrid.TotalPaidMonths < 0 {
			return invalid("income_history.hybrid.total_paid_months", "cannot be negative")
		}
		if h.Hybrid.AverageMonthlyIncome.IsNegative() {
			return invalid("income_history.hybrid.average_monthly_income", "cannot be negative")
		}
	default:
		return invalid("income_history.mode", "must be %q or %q, got %q", ModeHistoricalSweep, ModeHybrid, h.Mode)
	}
	return nil
}

// ExclusionPeriod is an inclusive month range without premiums. When
// IsArrearsPayment is set the gap is bought back retroactively.
type ExclusionPeriod struct {
	StartYear        int  `yaml:"start_year" json:"start_year"`
	StartMonth       int  `yaml:"start_month" json:"start_month"`
	EndYear          int  `yaml:"end_year" json:"end_year"`
	EndMonth         int  `yaml:"end_month" json:"end_month"`
	IsArrearsPayment bool `yaml:"arrears_payment" json:"arrears_payment"`
}

// Contains reports whether year/month falls inside the period
func (p ExclusionPeriod) Contains(year, month int) bool {
	v := MonthIndex(year, month)
	return v >= MonthIndex(p.StartYear, p.StartMonth) && v <= MonthIndex(p.EndYear, p.EndMonth)
}

// MonthIndex flattens a calendar month into a comparable integer
func MonthIndex(year, month int) int {
	return year*12 + month
}

// MonthClass is the per-month contribution status
type MonthClass int

const (
	Contributing MonthClass = iota
	ExcludedUnpaid
	ExcludedWithArrears
)

func (c MonthClass) String() string {
	switch c {
	case Contributing:
		return "contributing"
	case ExcludedUnpaid:
		return "excluded_unpaid"
	case ExcludedWithArrears:
		return "excluded_with_arrears"
	default:
		return "unknown"
	}
}

// ClassifyMonth returns the status of a month. Periods may overlap; the first
// period in list order that contains the month decides.
func ClassifyMonth(periods []ExclusionPeriod, year, month int) MonthClass {
	for _, p := range periods {
		if !p.Contains(year, month) {
			continue
		}
		if p.IsArrearsPayment {
			return ExcludedWithArrears
		}
		return ExcludedUnpaid
	}
	return Contributing
}

// WithoutArrears returns a copy of periods with every arrears flag cleared
func WithoutArrears(periods []ExclusionPeriod) []ExclusionPeriod {
	out := make([]ExclusionPeriod, len(periods))
	for i, p := range periods {
		p.IsArrearsPayment = false
		out[i] = p
	}
	return out
}

// Dependents eligible for the dependent add-on
type Dependents struct {
	Spouse   bool `yaml:"spouse" json:"spouse"`
	Children int  `yaml:"children" json:"children"`
	Parents  int  `yaml:"parents" json:"parents"`
}

// ClaimAdjustment holds early or deferred claiming years. Use the setters to
// keep the two mutually exclusive.
type ClaimAdjustment struct {
	EarlyYears int `yaml:"early_years" json:"early_years"`
	DeferYears int `yaml:"defer_years" json:"defer_years"`
}

// SetEarlyYears sets early claiming and clears any deferral
func (c *ClaimAdjustment) SetEarlyYears(years int) {
	if years < 0 {
		years = 0
	}
	c.EarlyYears = years
	if years > 0 {
		c.DeferYears = 0
	}
}

// SetDeferYears sets deferred claiming and clears any early claim
func (c *ClaimAdjustment) SetDeferYears(years int) {
	if years < 0 {
		years = 0
	}
	c.DeferYears = years
	if years > 0 {
		c.EarlyYears = 0
	}
}

// Offset is the signed shift from the normal claim age
func (c ClaimAdjustment) Offset() int {
	return c.DeferYears - c.EarlyYears
}

// Validate rejects both adjustments at once or negative values
func (c ClaimAdjustment) Validate() error {
	if c.EarlyYears < 0 {
		return invalid("claim.early_years", "cannot be negative")
	}
	if c.DeferYears < 0 {
		return invalid("claim.defer_years", "cannot be negative")
	}
	if c.EarlyYears > 0 && c.DeferYears > 0 {
		return &ValidationError{Field: "claim", Message: "set either early_years or defer_years", Err: ErrMutuallyExclusiveClaim}
	}
	return nil
}

// NationalInputs are the user-supplied projection inputs
type NationalInputs struct {
	BirthDate          time.Time `yaml:"birth_date" json:"birth_date"`
	StartYear          int       `yaml:"start_year" json:"start_year"`
	StartMonth         int       `yaml:"start_month" json:"start_month"`
	RetireAge          int       `yaml:"retire_age" json:"retire_age"`
	CurrentAgeOverride *int      `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	LifeExpectancyAge  int       `yaml:"life_expectancy_age,omitempty" json:"life_expectancy_age,omitempty"`

	CurrentMonthlyIncome decimal.Decimal   `yaml:"current_monthly_income" json:"current_monthly_income"`
	History              IncomeHistory     `yaml:"income_history" json:"income_history"`
	WageGrowthRate       decimal.Decimal   `yaml:"wage_growth_rate" json:"wage_growth_rate"`
	ExclusionPeriods     []ExclusionPeriod `yaml:"exclusion_periods,omitempty" json:"exclusion_periods,omitempty"`

	MilitaryService bool       `yaml:"military_service" json:"military_service"`
	ChildCount      int        `yaml:"child_count" json:"child_count"`
	Dependents      Dependents `yaml:"dependents" json:"dependents"`

	Claim                   ClaimAdjustment `yaml:"claim" json:"claim"`
	PostRetireMonthlyIncome decimal.Decimal `yaml:"post_retire_monthly_income" json:"post_retire_monthly_income"`
}

// Clone returns a deep copy whose slices and pointers are not shared
func (in NationalInputs) Clone() NationalInputs {
	out := in
	if in.CurrentAgeOverride != nil {
		age := *in.CurrentAgeOverride
		out.CurrentAgeOverride = &age
	}
	if in.ExclusionPeriods != nil {
		out.ExclusionPeriods = append([]ExclusionPeriod(nil), in.ExclusionPeriods...)
	}
	if in.History.Sweep != nil {
		sweep := *in.History.Sweep
		out.History.Sweep = &sweep
	}
	if in.History.Hybrid != nil {
		hybrid := *in.History.Hybrid
		out.History.Hybrid = &hybrid
	}
	return out
}

// Validate checks field ranges. Age ordering beyond start/retirement is the
// caller's concern; the period calculator clamps instead of failing.
func (in NationalInputs) Validate() error {
	if in.BirthDate.IsZero() {
		return invalid("birth_date", "is required")
	}
	if in.StartMonth < 1 || in.StartMonth > 12 {
		return invalid("start_month", "must be between 1 and 12, got %d", in.StartMonth)
	}
	if in.StartYear <= 0 {
		return invalid("start_year", "is required")
	}
	if in.RetireAge <= 0 || in.RetireAge > 100 {
		return invalid("retire_age", "must be between 1 and 100, got %d", in.RetireAge)
	}
	if in.CurrentMonthlyIncome.IsNegative() {
		return invalid("current_monthly_income", "cannot be negative")
	}
	if in.WageGrowthRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return invalid("wage_growth_rate", "must be greater than -100%%")
	}
	if in.ChildCount < 0 {
		return invalid("child_count", "cannot be negative")
	}
	if in.Dependents.Children < 0 || in.Dependents.Parents < 0 {
		return invalid("dependents", "counts cannot be negative")
	}
	if in.PostRetireMonthlyIncome.IsNegative() {
		return invalid("post_retire_monthly_income", "cannot be negative")
	}
	for i, p := range in.ExclusionPeriods {
		if p.StartMonth < 1 || p.StartMonth > 12 || p.EndMonth < 1 || p.EndMonth > 12 {
			return invalid("exclusion_periods", "period %d has a month outside 1-12", i)
		}
		if MonthIndex(p.EndYear, p.EndMonth) < MonthIndex(p.StartYear, p.StartMonth) {
			return invalid("exclusion_periods", "period %d ends before it starts", i)
		}
	}
	if err := in.History.Validate(); err != nil {
		return err
	}
	return in.Claim.Validate()
}

// PeriodData is derived once per request from birth date, enrollment start
// and retirement age.
type PeriodData struct {
	CurrentAge  int `yaml:"current_age" json:"current_age"`
	TotalMonths int `yaml:"total_months" json:"total_months"`
	RetireYear  int `yaml:"retire_year" json:"retire_year"`
	RetireMonth int `yaml:"retire_month" json:"retire_month"`
	StartYear   int `yaml:"start_year" json:"start_year"`
	StartMonth  int `yaml:"start_month" json:"start_month"`
	AsOfYear    int `yaml:"as_of_year" json:"as_of_year"`
	AsOfMonth   int `yaml:"as_of_month" json:"as_of_month"`
}

// ProjectionResult is the projection engine output. Currency fields are
// floor-truncated whole won.
type ProjectionResult struct {
	Mode     IncomeHistoryMode `yaml:"mode" json:"mode"`
	Eligible bool              `yaml:"eligible" json:"eligible"`

	MonthlyBenefit       decimal.Decimal `yaml:"monthly_benefit" json:"monthly_benefit"`
	AnnualBenefit        decimal.Decimal `yaml:"annual_benefit" json:"annual_benefit"`
	AverageIndexedIncome decimal.Decimal `yaml:"average_indexed_income" json:"average_indexed_income"`

	TotalPaidMonths     int             `yaml:"total_paid_months" json:"total_paid_months"`
	TotalCreditMonths   int             `yaml:"total_credit_months" json:"total_credit_months"`
	MonthlyCreditAmount decimal.Decimal `yaml:"monthly_credit_amount" json:"monthly_credit_amount"`

	TotalArrearsCost   decimal.Decimal `yaml:"total_arrears_cost" json:"total_arrears_cost"`
	TotalArrearsMonths int             `yaml:"total_arrears_months" json:"total_arrears_months"`

	MonthlyEarningsReduction decimal.Decimal `yaml:"monthly_earnings_reduction" json:"monthly_earnings_reduction"`
	AnnualDependentAddOn     decimal.Decimal `yaml:"annual_dependent_add_on" json:"annual_dependent_add_on"`
	TotalFuturePremium       decimal.Decimal `yaml:"total_future_premium" json:"total_future_premium"`
}

// ValueView is a monthly amount before and after pension income tax
type ValueView struct {
	Monthly         decimal.Decimal `yaml:"monthly" json:"monthly"`
	MonthlyTax      decimal.Decimal `yaml:"monthly_tax" json:"monthly_tax"`
	MonthlyAfterTax decimal.Decimal `yaml:"monthly_after_tax" json:"monthly_after_tax"`
}

// ArrearsAnalysis is the buy-back return on the arrears cost
type ArrearsAnalysis struct {
	Months              int             `yaml:"months" json:"months"`
	Cost                decimal.Decimal `yaml:"cost" json:"cost"`
	MonthlyIncrease     decimal.Decimal `yaml:"monthly_increase" json:"monthly_increase"`
	PaybackMonths       int             `yaml:"payback_months" json:"payback_months"`
	PaybackAge          int             `yaml:"payback_age" json:"payback_age"`
	ReceiptMonths       int             `yaml:"receipt_months" json:"receipt_months"`
	LifetimeIncrease    decimal.Decimal `yaml:"lifetime_increase" json:"lifetime_increase"`
	ReturnOnCost        decimal.Decimal `yaml:"return_on_cost" json:"return_on_cost"`
	RecoveredInLifetime bool            `yaml:"recovered_in_lifetime" json:"recovered_in_lifetime"`
}

// NationalEstimate is the full national pension answer returned to callers
type NationalEstimate struct {
	Period     PeriodData       `yaml:"period" json:"period"`
	Projection ProjectionResult `yaml:"projection" json:"projection"`

	PaidYears           int `yaml:"paid_years" json:"paid_years"`
	PaidRemainderMonths int `yaml:"paid_remainder_months" json:"paid_remainder_months"`
	ReceiptAge          int `yaml:"receipt_age" json:"receipt_age"`
	YearsUntilReceipt   int `yaml:"years_until_receipt" json:"years_until_receipt"`
	ClaimStartYear      int `yaml:"claim_start_year" json:"claim_start_year"`

	AnnualTax    decimal.Decimal `yaml:"annual_tax" json:"annual_tax"`
	CurrentValue ValueView       `yaml:"current_value" json:"current_value"`
	FutureValue  ValueView       `yaml:"future_value" json:"future_value"`

	Arrears *ArrearsAnalysis `yaml:"arrears,omitempty" json:"arrears,omitempty"`
}
