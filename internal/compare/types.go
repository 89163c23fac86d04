package compare

import (
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its key metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenario_name"`
	Description  string                   `json:"description"`
	Estimate     *domain.NationalEstimate `json:"-"`

	// Key Metrics
	Eligible        bool            `json:"eligible"`
	RetireAge       int             `json:"retire_age"`
	ReceiptAge      int             `json:"receipt_age"`
	PaidMonths      int             `json:"paid_months"`
	MonthlyBenefit  decimal.Decimal `json:"monthly_benefit"`
	AfterTaxMonthly decimal.Decimal `json:"after_tax_monthly"`
	FutureMonthly   decimal.Decimal `json:"future_monthly"`
	LifetimeTotal   decimal.Decimal `json:"lifetime_total"`
	ArrearsCost     decimal.Decimal `json:"arrears_cost"`

	// Comparison to Base
	MonthlyDiffFromBase  decimal.Decimal `json:"monthly_diff_from_base"`
	MonthlyPctFromBase   decimal.Decimal `json:"monthly_pct_from_base"`
	LifetimeDiffFromBase decimal.Decimal `json:"lifetime_diff_from_base"`
	PaidMonthsDiff       int             `json:"paid_months_diff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"config_path"`
}

// MetricsCalculator extracts key metrics from national pension estimates
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one estimate. The
// lifetime total runs from the receipt age to lifeExpectancyAge.
func (mc *MetricsCalculator) CalculateMetrics(name string, in domain.NationalInputs, est *domain.NationalEstimate, lifeExpectancyAge int) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:    name,
		Estimate:        est,
		Eligible:        est.Projection.Eligible,
		RetireAge:       in.RetireAge,
		ReceiptAge:      est.ReceiptAge,
		PaidMonths:      est.Projection.TotalPaidMonths,
		MonthlyBenefit:  est.Projection.MonthlyBenefit,
		AfterTaxMonthly: est.CurrentValue.MonthlyAfterTax,
		FutureMonthly:   est.FutureValue.Monthly,
		ArrearsCost:     est.Projection.TotalArrearsCost,
	}

	years := max(0, lifeExpectancyAge-est.ReceiptAge)
	result.LifetimeTotal = result.MonthlyBenefit.Mul(decimal.NewFromInt(int64(years * 12)))
	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.MonthlyDiffFromBase = scenario.MonthlyBenefit.Sub(base.MonthlyBenefit)

	if !base.MonthlyBenefit.IsZero() {
		scenario.MonthlyPctFromBase = scenario.MonthlyDiffFromBase.
			Div(base.MonthlyBenefit).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.LifetimeDiffFromBase = scenario.LifetimeTotal.Sub(base.LifetimeTotal)
	scenario.PaidMonthsDiff = scenario.PaidMonths - base.PaidMonths

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	bestMonthly := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MonthlyBenefit.GreaterThan(bestMonthly.MonthlyBenefit) {
			bestMonthly = alt
		}
	}

	if bestMonthly != compSet.BaseResult {
		diff := bestMonthly.MonthlyBenefit.Sub(compSet.BaseResult.MonthlyBenefit)
		recommendations = append(recommendations,
			"Best Monthly: "+bestMonthly.ScenarioName+" pays "+domain.FormatWon(diff)+
				" won more a month than the base scenario")
	}

	bestLifetime := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeTotal.GreaterThan(bestLifetime.LifetimeTotal) {
			bestLifetime = alt
		}
	}

	if bestLifetime != compSet.BaseResult {
		diff := bestLifetime.LifetimeTotal.Sub(compSet.BaseResult.LifetimeTotal)
		recommendations = append(recommendations,
			"Best Lifetime: "+bestLifetime.ScenarioName+" receives "+domain.FormatWon(diff)+
				" won more over a lifetime")
	} else {
		recommendations = append(recommendations,
			"Best Lifetime: the base scenario already has the largest lifetime total")
	}

	for _, alt := range compSet.AlternativeResults {
		if compSet.BaseResult.Eligible && !alt.Eligible {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s falls below the minimum contribution period", alt.ScenarioName))
		}
	}

	return recommendations
}
