package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// OptimizeMultiDimensional runs optimization across multiple targets and compares results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	base *domain.NationalInputs,
	constraints Constraints,
	goals []OptimizationGoal,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{OptimizeRetireAge, OptimizeClaimTiming, OptimizeIncome}

	var results []OptimizationResult
	for _, target := range targets {
		for _, goal := range goals {
			if target == OptimizeIncome && goal != GoalMatchBenefit {
				continue
			}
			req := OptimizationRequest{
				Base:          base,
				Target:        target,
				Goal:          goal,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
				Tolerance:     s.Options.Tolerance,
			}

			result, err := s.Optimize(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				s.CalcEngine.Logger.Warnf("optimize %s/%s: %v", target, goal, err)
				continue
			}

			if result != nil && result.Success {
				results = append(results, *result)
			}
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	mdResult := &MultiDimensionalResult{
		Results: results,
	}

	for i := range results {
		if mdResult.BestByMonthly == nil ||
			results[i].MonthlyBenefit.GreaterThan(mdResult.BestByMonthly.MonthlyBenefit) {
			mdResult.BestByMonthly = &results[i]
		}
		if mdResult.BestByLifetime == nil ||
			results[i].LifetimeTotal.GreaterThan(mdResult.BestByLifetime.LifetimeTotal) {
			mdResult.BestByLifetime = &results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	if result.BestByMonthly != nil {
		rec := fmt.Sprintf("For the highest monthly benefit: optimize %s", result.BestByMonthly.Target)
		rec += describeOptimum(result.BestByMonthly)
		rec += fmt.Sprintf(" for %s won a month", domain.FormatWon(result.BestByMonthly.MonthlyBenefit))
		recommendations = append(recommendations, rec)
	}

	if result.BestByLifetime != nil {
		rec := fmt.Sprintf("For the largest lifetime total: optimize %s", result.BestByLifetime.Target)
		rec += describeOptimum(result.BestByLifetime)
		rec += fmt.Sprintf(" for %s won in total", domain.FormatWon(result.BestByLifetime.LifetimeTotal))
		recommendations = append(recommendations, rec)
	}

	if result.BestByMonthly != nil && result.BestByLifetime != nil &&
		result.BestByMonthly.Target == result.BestByLifetime.Target {
		recommendations = append(recommendations,
			fmt.Sprintf("Optimizing %s gives both the highest monthly benefit and the largest lifetime total",
				result.BestByMonthly.Target))
	}

	return recommendations
}

func describeOptimum(r *OptimizationResult) string {
	switch {
	case r.OptimalRetireAge != nil:
		return fmt.Sprintf(" (contribute until %d)", *r.OptimalRetireAge)
	case r.OptimalClaimOffset != nil:
		return fmt.Sprintf(" (claim at %d)", r.ReceiptAge)
	case r.OptimalMonthlyIncome != nil:
		return fmt.Sprintf(" (income %s won a month)", domain.FormatWon(*r.OptimalMonthlyIncome))
	default:
		return ""
	}
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	base *domain.NationalInputs,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, base, constraints, []OptimizationGoal{goal})
}
