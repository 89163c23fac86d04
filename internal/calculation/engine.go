package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/kpgo/internal/domain"
)

// CalculationEngine orchestrates the national pension, basic pension and
// shortfall calculations against one policy table.
type CalculationEngine struct {
	Policy        *domain.PolicyConstants
	Projector     *NationalProjector
	TaxCalc       *PensionTaxCalculator
	FutureValue   *FutureValueProjector
	BasicPension  *BasicPensionEvaluator
	ShortfallCalc *ShortfallCalculator
	Logger        Logger
	// Now is the as-of clock for ages and the current year
	Now   func() time.Time
	Debug bool
}

// NewCalculationEngine creates an engine bound to a policy table
func NewCalculationEngine(policy *domain.PolicyConstants) *CalculationEngine {
	return &CalculationEngine{
		Policy:        policy,
		Projector:     NewNationalProjector(policy),
		TaxCalc:       NewPensionTaxCalculator(policy.Tax),
		FutureValue:   NewFutureValueProjector(policy.Economy.InflationRate),
		BasicPension:  NewBasicPensionEvaluator(policy.BasicPension),
		ShortfallCalc: NewShortfallCalculator(),
		Logger:        NopLogger{},
		Now:           time.Now,
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Projector.logger = l
}

// WithPolicy returns an engine over a different policy table that shares
// this engine's clock and logger
func (ce *CalculationEngine) WithPolicy(policy *domain.PolicyConstants) *CalculationEngine {
	clone := NewCalculationEngine(policy)
	clone.Now = ce.Now
	clone.Debug = ce.Debug
	clone.SetLogger(ce.Logger)
	return clone
}

// Period derives the enrollment window for inputs as of the engine clock
func (ce *CalculationEngine) Period(in domain.NationalInputs) domain.PeriodData {
	return CalculatePeriod(in.BirthDate, in.StartYear, in.StartMonth, in.RetireAge, ce.Now(), in.CurrentAgeOverride)
}

func (ce *CalculationEngine) validateNational(in domain.NationalInputs) error {
	if err := in.Validate(); err != nil {
		return err
	}
	rules := ce.Policy.National
	if in.Claim.EarlyYears > rules.MaxEarlyYears {
		return &domain.ValidationError{Field: "claim.early_years", Message: fmt.Sprintf("cannot exceed %d", rules.MaxEarlyYears)}
	}
	if in.Claim.DeferYears > rules.MaxDeferYears {
		return &domain.ValidationError{Field: "claim.defer_years", Message: fmt.Sprintf("cannot exceed %d", rules.MaxDeferYears)}
	}
	return nil
}

// ProjectNationalPension runs the projection. Insufficient history returns
// the zero-benefit result together with an error wrapping
// domain.ErrInsufficientHistory.
func (ce *CalculationEngine) ProjectNationalPension(in domain.NationalInputs) (*domain.ProjectionResult, error) {
	if err := ce.validateNational(in); err != nil {
		return nil, fmt.Errorf("invalid national pension inputs: %w", err)
	}
	result := ce.Projector.Project(in, ce.Period(in))
	if !result.Eligible {
		return &result, fmt.Errorf("%d paid months and no credits: %w", result.TotalPaidMonths, domain.ErrInsufficientHistory)
	}
	return &result, nil
}

// EstimateNational extends the projection with claim timing, tax, current
// and future value views and the buy-back analysis.
func (ce *CalculationEngine) EstimateNational(in domain.NationalInputs) (*domain.NationalEstimate, error) {
	if err := ce.validateNational(in); err != nil {
		return nil, fmt.Errorf("invalid national pension inputs: %w", err)
	}

	period := ce.Period(in)
	proj := ce.Projector.Project(in, period)
	rules := ce.Policy.National

	receiptAge := rules.NormalClaimAge + in.Claim.Offset()
	yearsUntil := max(0, receiptAge-period.CurrentAge)

	est := &domain.NationalEstimate{
		Period:              period,
		Projection:          proj,
		PaidYears:           proj.TotalPaidMonths / 12,
		PaidRemainderMonths: proj.TotalPaidMonths % 12,
		ReceiptAge:          receiptAge,
		YearsUntilReceipt:   yearsUntil,
		ClaimStartYear:      period.RetireYear + (receiptAge - in.RetireAge),
	}

	est.AnnualTax = ce.TaxCalc.CalculateAnnualTax(proj.AnnualBenefit)
	monthlyTax := est.AnnualTax.Div(twelve).Floor()
	est.CurrentValue = domain.ValueView{
		Monthly:         proj.MonthlyBenefit,
		MonthlyTax:      monthlyTax,
		MonthlyAfterTax: proj.MonthlyBenefit.Sub(monthlyTax),
	}
	futureGross := ce.FutureValue.FutureValue(proj.MonthlyBenefit, yearsUntil)
	futureTax := ce.FutureValue.FutureValue(monthlyTax, yearsUntil)
	est.FutureValue = domain.ValueView{
		Monthly:         futureGross,
		MonthlyTax:      futureTax,
		MonthlyAfterTax: futureGross.Sub(futureTax),
	}

	if proj.TotalArrearsMonths > 0 {
		without := in
		without.ExclusionPeriods = domain.WithoutArrears(in.ExclusionPeriods)
		base := ce.Projector.Project(without, period)
		increase := proj.MonthlyBenefit.Sub(base.MonthlyBenefit)

		arrears, err := AnalyzeArrears(proj.TotalArrearsMonths, proj.TotalArrearsCost, increase, receiptAge, ce.LifeExpectancy(in))
		if err != nil {
			return nil, fmt.Errorf("arrears analysis: %w", err)
		}
		est.Arrears = arrears
		ce.Logger.Debugf("arrears: %d months cost %s, +%s/month", arrears.Months, arrears.Cost, arrears.MonthlyIncrease)
	}

	if ce.Debug {
		ce.Logger.Debugf("estimate: receipt age %d in %d (%d years), tax %s/yr",
			receiptAge, est.ClaimStartYear, yearsUntil, est.AnnualTax)
	}

	if !proj.Eligible {
		return est, fmt.Errorf("%d paid months and no credits: %w", proj.TotalPaidMonths, domain.ErrInsufficientHistory)
	}
	return est, nil
}

// EvaluateBasicPension runs the means test
func (ce *CalculationEngine) EvaluateBasicPension(in domain.BasicPensionInputs) (*domain.BasicPensionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid basic pension inputs: %w", err)
	}
	result := ce.BasicPension.Evaluate(in)
	ce.Logger.Debugf("basic pension: recognized %s vs threshold %s, eligible=%t",
		result.RecognizedIncome, result.Threshold, result.Eligible)
	return &result, nil
}

// ComputeShortfall runs the savings gap calculation
func (ce *CalculationEngine) ComputeShortfall(in domain.ShortfallInputs) (*domain.ShortfallResult, error) {
	result, err := ce.ShortfallCalc.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("invalid shortfall inputs: %w", err)
	}
	return result, nil
}

// Run evaluates every section present in the request and assembles a report.
// Insufficient national history is recorded on the report rather than
// failing the run.
func (ce *CalculationEngine) Run(ctx context.Context, req *domain.Request) (*domain.Report, error) {
	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("request has no sections: %w", domain.ErrInvalidInput)
	}

	report := &domain.Report{
		CalculationID: uuid.NewString(),
		GeneratedAt:   ce.Now(),
		PolicyYear:    ce.Policy.Metadata.PolicyYear,
	}

	if req.National != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		est, err := ce.EstimateNational(*req.National)
		switch {
		case errors.Is(err, domain.ErrInsufficientHistory):
			ce.Logger.Warnf("national pension: %v", err)
			report.National = est
			report.NationalError = err.Error()
		case err != nil:
			return nil, err
		default:
			report.National = est
		}
	}

	if req.BasicPension != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bp, err := ce.EvaluateBasicPension(*req.BasicPension)
		if err != nil {
			return nil, err
		}
		report.BasicPension = bp
	}

	if req.Shortfall != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sf, err := ce.ComputeShortfall(*req.Shortfall)
		if err != nil {
			return nil, err
		}
		report.Shortfall = sf
	}

	ce.Logger.Infof("calculation %s complete", report.CalculationID)
	return report, nil
}

// LifeExpectancy returns the input age or the policy default when unset
func (ce *CalculationEngine) LifeExpectancy(in domain.NationalInputs) int {
	if in.LifeExpectancyAge > 0 {
		return in.LifeExpectancyAge
	}
	return ce.Policy.Economy.LifeExpectancyAge
}
