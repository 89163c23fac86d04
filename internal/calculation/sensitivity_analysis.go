package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SensitivityAnalyzer sweeps national pension assumptions one at a time
type SensitivityAnalyzer struct {
	engine *CalculationEngine
}

// NewSensitivityAnalyzer creates an analyzer over an engine
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeSingleParameter re-estimates the inputs at every value of one
// parameter and compares each to the unmodified inputs
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(ctx context.Context, in domain.NationalInputs, parameter domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	base, err := sa.metrics(sa.engine, in)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate base inputs: %w", err)
	}

	results, err := sa.sweep(ctx, in, parameter, base)
	if err != nil {
		return nil, err
	}

	scores := map[string]decimal.Decimal{parameter.Name: sensitivityScore(results, base)}
	return &domain.ParameterSensitivityAnalysis{
		Parameters:   []domain.SensitivityParameter{parameter},
		Base:         base,
		Results:      results,
		Summary:      summarize(scores, []domain.SensitivityParameter{parameter}),
		AnalysisType: "single",
	}, nil
}

// AnalyzeMultipleParameters runs independent sweeps and ranks the parameters
// by how far each moves the monthly benefit
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(ctx context.Context, in domain.NationalInputs, parameters []domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	if len(parameters) == 0 {
		return nil, fmt.Errorf("at least one parameter is required")
	}

	base, err := sa.metrics(sa.engine, in)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate base inputs: %w", err)
	}

	all := make([]domain.SensitivityResult, 0)
	scores := make(map[string]decimal.Decimal, len(parameters))
	for _, param := range parameters {
		results, err := sa.sweep(ctx, in, param, base)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		scores[param.Name] = sensitivityScore(results, base)
		all = append(all, results...)
	}

	return &domain.ParameterSensitivityAnalysis{
		Parameters:   parameters,
		Base:         base,
		Results:      all,
		Summary:      summarize(scores, parameters),
		AnalysisType: "multi",
	}, nil
}

func (sa *SensitivityAnalyzer) sweep(ctx context.Context, in domain.NationalInputs, parameter domain.SensitivityParameter, base domain.SensitivityMetrics) ([]domain.SensitivityResult, error) {
	values := parameter.Values()
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		engine, modified, err := sa.modifyParameter(in, parameter.Name, value)
		if err != nil {
			return nil, err
		}

		metrics, err := sa.metrics(engine, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate %s=%s: %w", parameter.Name, value, err)
		}
		metrics.MonthlyChange = metrics.MonthlyBenefit.Sub(base.MonthlyBenefit)
		if base.MonthlyBenefit.IsPositive() {
			metrics.MonthlyChangePct = metrics.MonthlyChange.Div(base.MonthlyBenefit).Mul(hundred).Round(2)
		}

		results = append(results, domain.SensitivityResult{
			Parameter:  parameter.Name,
			Value:      value,
			Label:      fmt.Sprintf("%s=%s", parameter.Name, value.String()),
			KeyMetrics: metrics,
		})
	}
	return results, nil
}

// modifyParameter returns the engine and inputs to evaluate for one value.
// Only inflation_rate touches the policy; the rest change the inputs.
func (sa *SensitivityAnalyzer) modifyParameter(in domain.NationalInputs, name string, value decimal.Decimal) (*CalculationEngine, domain.NationalInputs, error) {
	modified := in.Clone()
	engine := sa.engine

	switch name {
	case "wage_growth_rate":
		modified.WageGrowthRate = value
	case "inflation_rate":
		policy := *sa.engine.Policy
		policy.Economy.InflationRate = value
		engine = sa.engine.WithPolicy(&policy)
	case "income_scale":
		modified.CurrentMonthlyIncome = in.CurrentMonthlyIncome.Mul(value).Floor()
	case "retire_age_shift":
		modified.RetireAge = in.RetireAge + int(value.IntPart())
	case "claim_offset":
		offset := int(value.IntPart())
		modified.Claim = domain.ClaimAdjustment{}
		if offset < 0 {
			modified.Claim.SetEarlyYears(-offset)
		} else {
			modified.Claim.SetDeferYears(offset)
		}
	default:
		return nil, in, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	return engine, modified, nil
}

// metrics estimates one set of inputs. Insufficient history is a valid
// point on a sweep and yields zero benefits.
func (sa *SensitivityAnalyzer) metrics(engine *CalculationEngine, in domain.NationalInputs) (domain.SensitivityMetrics, error) {
	est, err := engine.EstimateNational(in)
	if err != nil && !errors.Is(err, domain.ErrInsufficientHistory) {
		return domain.SensitivityMetrics{}, err
	}
	monthly := est.Projection.MonthlyBenefit
	return domain.SensitivityMetrics{
		Eligible:       est.Projection.Eligible,
		ReceiptAge:     est.ReceiptAge,
		MonthlyBenefit: monthly,
		FutureMonthly:  est.FutureValue.Monthly,
		LifetimeTotal:  LifetimeReceipts(monthly, est.ReceiptAge, engine.LifeExpectancy(in)),
	}, nil
}

// sensitivityScore is the spread of the monthly benefit across a sweep as a
// percentage of the base benefit
func sensitivityScore(results []domain.SensitivityResult, base domain.SensitivityMetrics) decimal.Decimal {
	if len(results) == 0 || !base.MonthlyBenefit.IsPositive() {
		return zero
	}
	lo, hi := results[0].KeyMetrics.MonthlyBenefit, results[0].KeyMetrics.MonthlyBenefit
	for _, r := range results[1:] {
		lo = decimal.Min(lo, r.KeyMetrics.MonthlyBenefit)
		hi = decimal.Max(hi, r.KeyMetrics.MonthlyBenefit)
	}
	return hi.Sub(lo).Div(base.MonthlyBenefit).Mul(hundred).Round(2)
}

// summarize picks the highest score; ties go to the earlier parameter
func summarize(scores map[string]decimal.Decimal, parameters []domain.SensitivityParameter) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{SensitivityScores: scores}
	best := decimal.NewFromInt(-1)
	for _, p := range parameters {
		if s, ok := scores[p.Name]; ok && s.GreaterThan(best) {
			best = s
			summary.MostSensitiveParameter = p.Name
		}
	}
	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()
	return summary
}
