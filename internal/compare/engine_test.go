package compare

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/kpgo/internal/calculation"
	"github.com/rgehrsitz/kpgo/internal/config"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompareEngine(t *testing.T) *CompareEngine {
	t.Helper()
	policy, err := config.NewPolicyLoader().LoadDefault()
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine(policy)
	engine.Now = func() time.Time { return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC) }
	return NewCompareEngine(engine)
}

// shortCareerInputs contributes six months in 2026 and carries the military
// credit; claiming at 65 pays 49,789 won a month.
func shortCareerInputs() domain.NationalInputs {
	return domain.NationalInputs{
		BirthDate:            time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            2026,
		StartMonth:           1,
		RetireAge:            36,
		CurrentMonthlyIncome: decimal.NewFromInt(3000000),
		History:              domain.SweepHistory(decimal.NewFromInt(1000000)),
		WageGrowthRate:       decimal.NewFromFloat(0.03),
		MilitaryService:      true,
	}
}

func TestCompareClaimTiming(t *testing.T) {
	ce := newTestCompareEngine(t)

	in := shortCareerInputs()
	in.Claim = domain.ClaimAdjustment{DeferYears: 2}

	cmp, err := ce.CompareClaimTiming(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 90, cmp.LifeExpectancyAge)
	assert.Equal(t, "normal (age 65)", cmp.Base.Label, "input claim adjustment is replaced")
	assert.Equal(t, 65, cmp.Base.ClaimAge)
	assert.True(t, cmp.Base.MonthlyBenefit.Equal(decimal.NewFromInt(49789)))
	assert.True(t, cmp.Base.LifetimeTotal.Equal(decimal.NewFromInt(49789*12*25)))

	require.Len(t, cmp.Alternatives, 10)
	assert.Equal(t, "early_5yr (age 60)", cmp.Alternatives[0].Label)
	assert.Equal(t, "early_1yr (age 64)", cmp.Alternatives[4].Label)
	assert.Equal(t, "defer_1yr (age 66)", cmp.Alternatives[5].Label)
	assert.Equal(t, "defer_5yr (age 70)", cmp.Alternatives[9].Label)

	for _, alt := range cmp.Alternatives {
		if alt.EarlyYears > 0 {
			assert.True(t, alt.MonthlyDiffFromBase.IsNegative(), alt.Label)
		} else {
			assert.True(t, alt.MonthlyDiffFromBase.IsPositive(), alt.Label)
		}
	}

	assert.Equal(t, 77, cmp.Alternatives[0].BreakEvenAge)
	assert.Equal(t, 84, cmp.Alternatives[9].BreakEvenAge)
	assert.Equal(t, "defer_5yr (age 70)", cmp.Best)

	require.NotEmpty(t, cmp.Recommendations)
	assert.Contains(t, cmp.Recommendations[0], "defer_5yr")
	joined := strings.Join(cmp.Recommendations, "\n")
	assert.Contains(t, joined, "past age 84")
	assert.Contains(t, joined, "about 6.0%")
}

func TestCompareClaimTiming_ShortLifeFavorsEarly(t *testing.T) {
	ce := newTestCompareEngine(t)

	in := shortCareerInputs()
	in.LifeExpectancyAge = 75

	cmp, err := ce.CompareClaimTiming(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 75, cmp.LifeExpectancyAge)
	assert.Equal(t, "early_3yr (age 62)", cmp.Best)
}

func TestCompareClaimTiming_InsufficientHistory(t *testing.T) {
	ce := newTestCompareEngine(t)

	in := shortCareerInputs()
	in.MilitaryService = false

	_, err := ce.CompareClaimTiming(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrInsufficientHistory))
}

func TestCompareClaimTiming_Cancelled(t *testing.T) {
	ce := newTestCompareEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.CompareClaimTiming(ctx, shortCareerInputs())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCompare_Templates(t *testing.T) {
	ce := newTestCompareEngine(t)
	in := shortCareerInputs()

	compSet, err := ce.Compare(context.Background(), &in, CompareOptions{
		Templates:  []string{"work_1yr", "claim_defer_5"},
		ConfigPath: "testdata/short.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "base", compSet.BaseScenarioName)
	assert.Equal(t, "testdata/short.yaml", compSet.ConfigPath)
	require.NotNil(t, compSet.BaseResult)
	assert.True(t, compSet.BaseResult.MonthlyBenefit.Equal(decimal.NewFromInt(49789)))
	assert.Equal(t, 6, compSet.BaseResult.PaidMonths)

	require.Len(t, compSet.AlternativeResults, 2)

	work := compSet.AlternativeResults[0]
	assert.Equal(t, "base_work_1yr", work.ScenarioName)
	assert.NotEmpty(t, work.Description)
	assert.Equal(t, 37, work.RetireAge)
	assert.Equal(t, 12, work.PaidMonthsDiff)
	assert.True(t, work.MonthlyDiffFromBase.IsPositive())

	deferred := compSet.AlternativeResults[1]
	assert.Equal(t, 70, deferred.ReceiptAge)
	assert.True(t, deferred.MonthlyDiffFromBase.IsPositive())

	assert.NotEmpty(t, compSet.Recommendations)
	assert.Equal(t, 36, in.RetireAge, "base inputs must not be modified")
}

func TestCompare_CustomTransforms(t *testing.T) {
	ce := newTestCompareEngine(t)
	in := shortCareerInputs()

	compSet, err := ce.Compare(context.Background(), &in, CompareOptions{
		BaseScenarioName: "plan",
		Transforms:       []string{"claim_early:years=2;postpone_retirement:years=2"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "plan_custom1", alt.ScenarioName)
	assert.Equal(t, 63, alt.ReceiptAge)
	assert.Equal(t, 38, alt.RetireAge)
	assert.Contains(t, alt.Description, "; ")
}

func TestCompare_Errors(t *testing.T) {
	ce := newTestCompareEngine(t)
	in := shortCareerInputs()
	ctx := context.Background()

	_, err := ce.Compare(ctx, nil, CompareOptions{Templates: []string{"work_1yr"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ce.Compare(ctx, &in, CompareOptions{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ce.Compare(ctx, &in, CompareOptions{Templates: []string{"no_such_template"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = ce.Compare(ctx, &in, CompareOptions{Transforms: []string{"bogus:years=1"}})
	assert.Error(t, err)
}

func TestCompare_IneligibleAlternativeWarns(t *testing.T) {
	ce := newTestCompareEngine(t)
	in := shortCareerInputs()
	in.StartYear = 2010
	in.MilitaryService = false
	in.RetireAge = 40

	compSet, err := ce.Compare(context.Background(), &in, CompareOptions{
		Transforms: []string{"set_retire_age:age=20"},
	})
	require.NoError(t, err)
	require.True(t, compSet.BaseResult.Eligible)

	alt := compSet.AlternativeResults[0]
	assert.False(t, alt.Eligible)
	assert.True(t, alt.MonthlyBenefit.IsZero())
	assert.Contains(t, strings.Join(compSet.Recommendations, "\n"), "Warning: base_custom1")
}

func TestAttachClaimTiming(t *testing.T) {
	ce := newTestCompareEngine(t)
	in := shortCareerInputs()

	report, err := ce.CalcEngine.Run(context.Background(), &domain.Request{National: &in})
	require.NoError(t, err)
	require.NoError(t, ce.AttachClaimTiming(context.Background(), report, &in))
	require.NotNil(t, report.ClaimTiming)
	assert.Equal(t, "defer_5yr (age 70)", report.ClaimTiming.Best)

	ineligible := shortCareerInputs()
	ineligible.MilitaryService = false
	report, err = ce.CalcEngine.Run(context.Background(), &domain.Request{National: &ineligible})
	require.NoError(t, err)
	require.NoError(t, ce.AttachClaimTiming(context.Background(), report, &ineligible))
	assert.Nil(t, report.ClaimTiming, "ineligible reports get no comparison")

	require.NoError(t, ce.AttachClaimTiming(context.Background(), report, nil))
}
