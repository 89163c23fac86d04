package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityParameter_Values(t *testing.T) {
	values := domain.ClaimOffsetParam.Values()
	require.Len(t, values, 11)
	assert.True(t, values[0].Equal(d(-5)))
	assert.True(t, values[5].IsZero())
	assert.True(t, values[10].Equal(d(5)))

	single := domain.SensitivityParameter{Name: "x", Steps: 1, BaseValue: d(7)}
	assert.Equal(t, []decimal.Decimal{d(7)}, single.Values())
}

func TestSensitivityAnalyzer_ClaimOffset(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine(t))

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), shortCareerInputs(), domain.ClaimOffsetParam)
	require.NoError(t, err)

	assert.Equal(t, "single", analysis.AnalysisType)
	assert.True(t, analysis.Base.MonthlyBenefit.Equal(d(49789)))
	assert.Equal(t, 65, analysis.Base.ReceiptAge)
	assert.True(t, analysis.Base.LifetimeTotal.Equal(d(49789*12*25)), "got %s", analysis.Base.LifetimeTotal)

	require.Len(t, analysis.Results, 11)
	for i := 1; i < len(analysis.Results); i++ {
		prev, cur := analysis.Results[i-1].KeyMetrics, analysis.Results[i].KeyMetrics
		assert.True(t, cur.MonthlyBenefit.GreaterThan(prev.MonthlyBenefit), "monthly should rise with later claims at %d", i)
		assert.Equal(t, prev.ReceiptAge+1, cur.ReceiptAge)
	}

	normal := analysis.Results[5]
	assert.True(t, normal.KeyMetrics.MonthlyChange.IsZero())
	assert.True(t, analysis.Results[0].KeyMetrics.MonthlyChangePct.IsNegative())
	assert.True(t, analysis.Results[10].KeyMetrics.MonthlyChangePct.IsPositive())

	assert.Equal(t, "claim_offset", analysis.Summary.MostSensitiveParameter)
	assert.Equal(t, "CRITICAL", analysis.Summary.RiskLevel)
	assert.NotEmpty(t, analysis.Summary.Recommendations)
}

func TestSensitivityAnalyzer_InflationOnlyMovesFutureValue(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine(t))

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), shortCareerInputs(), domain.InflationRateParam)
	require.NoError(t, err)
	require.Len(t, analysis.Results, 4)

	for i, r := range analysis.Results {
		assert.True(t, r.KeyMetrics.MonthlyBenefit.Equal(d(49789)))
		if i > 0 {
			assert.True(t, r.KeyMetrics.FutureMonthly.GreaterThan(analysis.Results[i-1].KeyMetrics.FutureMonthly))
		}
	}
	assert.True(t, analysis.Summary.SensitivityScores["inflation_rate"].IsZero())
	assert.Equal(t, "LOW", analysis.Summary.RiskLevel)
}

func TestSensitivityAnalyzer_IncomeScale(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine(t))

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), shortCareerInputs(), domain.IncomeScaleParam)
	require.NoError(t, err)
	require.Len(t, analysis.Results, 5)

	first := analysis.Results[0].KeyMetrics.MonthlyBenefit
	last := analysis.Results[4].KeyMetrics.MonthlyBenefit
	assert.True(t, last.GreaterThan(first))
	assert.True(t, analysis.Results[2].KeyMetrics.MonthlyChange.IsZero())
}

func TestSensitivityAnalyzer_MultipleParameters(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine(t))
	params := []domain.SensitivityParameter{domain.InflationRateParam, domain.ClaimOffsetParam}

	analysis, err := analyzer.AnalyzeMultipleParameters(context.Background(), shortCareerInputs(), params)
	require.NoError(t, err)

	assert.Equal(t, "multi", analysis.AnalysisType)
	assert.Len(t, analysis.Results, 15)
	assert.Len(t, analysis.Summary.SensitivityScores, 2)
	assert.Equal(t, "claim_offset", analysis.Summary.MostSensitiveParameter)
}

func TestSensitivityAnalyzer_Errors(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(newTestEngine(t))

	_, err := analyzer.AnalyzeSingleParameter(context.Background(), shortCareerInputs(),
		domain.SensitivityParameter{Name: "moon_phase", Steps: 2, MinValue: d(0), MaxValue: d(1)})
	assert.ErrorContains(t, err, "unknown sensitivity parameter")

	_, err = analyzer.AnalyzeMultipleParameters(context.Background(), shortCareerInputs(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.AnalyzeSingleParameter(ctx, shortCareerInputs(), domain.WageGrowthRateParam)
	assert.ErrorIs(t, err, context.Canceled)
}
