package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver searches national pension inputs for a goal
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// evaluation is one estimated point of a search
type evaluation struct {
	estimate *domain.NationalEstimate
	monthly  decimal.Decimal
	lifetime decimal.Decimal
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Base == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base inputs are required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Goal == GoalMatchBenefit && req.Constraints.TargetMonthlyBenefit == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "match_benefit requires target_monthly_benefit"}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	base, err := s.evaluate(req, *req.Base)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to estimate base inputs", Cause: err}
	}

	var result *OptimizationResult
	switch req.Target {
	case OptimizeRetireAge:
		result, err = s.optimizeRetireAge(ctx, req)
	case OptimizeIncome:
		result, err = s.optimizeIncome(ctx, req)
	case OptimizeClaimTiming:
		result, err = s.optimizeClaimTiming(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	result.BaseMonthlyBenefit = base.monthly
	result.MonthlyDiffFromBase = result.MonthlyBenefit.Sub(base.monthly)
	result.LifetimeDiffFromBase = result.LifetimeTotal.Sub(base.lifetime)
	return result, nil
}

// optimizeRetireAge grid-searches the contribution end age
func (s *Solver) optimizeRetireAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	minAge := max(1, req.Base.RetireAge-5)
	maxAge := min(100, req.Base.RetireAge+10)
	if req.Constraints.MinRetireAge != nil {
		minAge = *req.Constraints.MinRetireAge
	}
	if req.Constraints.MaxRetireAge != nil {
		maxAge = *req.Constraints.MaxRetireAge
	}

	var candidates []int
	for age := minAge; age <= maxAge; age++ {
		candidates = append(candidates, age)
	}

	return s.gridSearch(ctx, req, "optimize_retire_age", candidates, func(age int) transform.InputTransform {
		return &transform.SetRetireAge{Age: age}
	}, func(r *OptimizationResult, age int) {
		r.OptimalRetireAge = &age
	})
}

// optimizeClaimTiming grid-searches the early/defer offset
func (s *Solver) optimizeClaimTiming(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	rules := s.CalcEngine.Policy.National
	minOffset, maxOffset := -rules.MaxEarlyYears, rules.MaxDeferYears
	if req.Constraints.MinClaimOffset != nil {
		minOffset = max(minOffset, *req.Constraints.MinClaimOffset)
	}
	if req.Constraints.MaxClaimOffset != nil {
		maxOffset = min(maxOffset, *req.Constraints.MaxClaimOffset)
	}

	var candidates []int
	for offset := minOffset; offset <= maxOffset; offset++ {
		candidates = append(candidates, offset)
	}

	return s.gridSearch(ctx, req, "optimize_claim_timing", candidates, claimTransform, func(r *OptimizationResult, offset int) {
		r.OptimalClaimOffset = &offset
	})
}

func claimTransform(offset int) transform.InputTransform {
	switch {
	case offset < 0:
		return &transform.ClaimEarly{Years: -offset}
	case offset > 0:
		return &transform.ClaimDefer{Years: offset}
	default:
		return &transform.ClaimAtNormalAge{}
	}
}

// gridSearch evaluates every candidate in order. For match_benefit the first
// candidate reaching the target wins; otherwise the best by goal.
func (s *Solver) gridSearch(
	ctx context.Context,
	req OptimizationRequest,
	operation string,
	candidates []int,
	build func(int) transform.InputTransform,
	record func(*OptimizationResult, int),
) (*OptimizationResult, error) {
	var best *OptimizationResult
	iterations := 0

	for _, candidate := range candidates {
		if iterations >= req.MaxIterations {
			break
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		modified, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{build(candidate)})
		if err != nil {
			return nil, &BreakEvenError{Operation: operation, Message: "failed to apply transform", Cause: err}
		}

		eval, err := s.evaluate(req, *modified)
		if err != nil {
			// candidates outside the policy limits are skipped
			s.CalcEngine.Logger.Debugf("%s: skipping %d: %v", operation, candidate, err)
			continue
		}

		result := s.newResult(req, eval, iterations)
		record(result, candidate)

		if req.Goal == GoalMatchBenefit && eval.monthly.GreaterThanOrEqual(*req.Constraints.TargetMonthlyBenefit) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Target reached after %d candidates", iterations)
			return result, nil
		}

		if best == nil || s.isBetter(result, best, req) {
			best = result
		}
	}

	if best == nil {
		return nil, &BreakEvenError{Operation: operation, Message: "no valid candidates found"}
	}

	best.Iterations = iterations
	if req.Goal == GoalMatchBenefit {
		best.ConvergenceInfo = fmt.Sprintf("Target not reached; closest of %d candidates", iterations)
		return best, nil
	}
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d candidates", iterations)
	return best, nil
}

// optimizeIncome bisects the current monthly income for a target benefit.
// The benefit is non-decreasing in income, so bisection converges.
func (s *Solver) optimizeIncome(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Goal != GoalMatchBenefit {
		return nil, &BreakEvenError{
			Operation: "optimize_income",
			Message:   fmt.Sprintf("income search supports only %s, got %s", GoalMatchBenefit, req.Goal),
		}
	}
	target := *req.Constraints.TargetMonthlyBenefit

	lo := decimal.Zero
	hi := s.CalcEngine.Policy.National.IncomeCapMonthly
	if req.Constraints.MinMonthlyIncome != nil {
		lo = *req.Constraints.MinMonthlyIncome
	}
	if req.Constraints.MaxMonthlyIncome != nil {
		hi = *req.Constraints.MaxMonthlyIncome
	}

	evalAt := func(income decimal.Decimal, iteration int) (*OptimizationResult, error) {
		modified, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{&transform.SetIncome{Monthly: income}})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_income", Message: "failed to apply income transform", Cause: err}
		}
		eval, err := s.evaluate(req, *modified)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_income", Message: "failed to estimate", Cause: err}
		}
		result := s.newResult(req, eval, iteration)
		incomeCopy := income
		result.OptimalMonthlyIncome = &incomeCopy
		return result, nil
	}

	upper, err := evalAt(hi, 1)
	if err != nil {
		return nil, err
	}
	if upper.MonthlyBenefit.LessThan(target.Sub(req.Tolerance)) {
		upper.ConvergenceInfo = fmt.Sprintf("Target unreachable: %s won at the income upper bound", domain.FormatWon(upper.MonthlyBenefit))
		return upper, nil
	}

	best := upper
	two := decimal.NewFromInt(2)
	for iterations := 2; iterations <= req.MaxIterations; iterations++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two).Floor()
		result, err := evalAt(mid, iterations)
		if err != nil {
			return nil, err
		}

		diff := result.MonthlyBenefit.Sub(target)
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Converged to target within %s won", domain.FormatWon(req.Tolerance))
			return result, nil
		}
		if diff.IsNegative() {
			lo = mid
		} else {
			hi = mid
			best = result
		}

		if hi.Sub(lo).LessThanOrEqual(decimal.NewFromInt(1)) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = "Bisection converged"
			return best, nil
		}
	}

	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

// evaluate estimates one set of inputs; insufficient history is a valid
// zero-benefit point
func (s *Solver) evaluate(req OptimizationRequest, in domain.NationalInputs) (*evaluation, error) {
	est, err := s.CalcEngine.EstimateNational(in)
	if err != nil && !errors.Is(err, domain.ErrInsufficientHistory) {
		return nil, err
	}
	life := req.Constraints.LifeExpectancyAge
	if life == 0 {
		life = s.CalcEngine.LifeExpectancy(in)
	}
	monthly := est.Projection.MonthlyBenefit
	return &evaluation{
		estimate: est,
		monthly:  monthly,
		lifetime: calculation.LifetimeReceipts(monthly, est.ReceiptAge, life),
	}, nil
}

func (s *Solver) newResult(req OptimizationRequest, eval *evaluation, iterations int) *OptimizationResult {
	return &OptimizationResult{
		Request:        req,
		Target:         req.Target,
		Goal:           req.Goal,
		Iterations:     iterations,
		Estimate:       eval.estimate,
		MonthlyBenefit: eval.monthly,
		ReceiptAge:     eval.estimate.ReceiptAge,
		LifetimeTotal:  eval.lifetime,
	}
}

// isBetter compares two results based on optimization goal
func (s *Solver) isBetter(a, b *OptimizationResult, req OptimizationRequest) bool {
	switch req.Goal {
	case GoalMaximizeMonthly:
		return a.MonthlyBenefit.GreaterThan(b.MonthlyBenefit)
	case GoalMaximizeLifetime:
		return a.LifetimeTotal.GreaterThan(b.LifetimeTotal)
	case GoalMatchBenefit:
		target := *req.Constraints.TargetMonthlyBenefit
		return a.MonthlyBenefit.Sub(target).Abs().LessThan(b.MonthlyBenefit.Sub(target).Abs())
	default:
		return false
	}
}
