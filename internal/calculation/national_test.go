package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hybridInputs(paidMonths int, average int64) domain.NationalInputs {
	return domain.NationalInputs{
		BirthDate:            time.Date(1960, 3, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            1990,
		StartMonth:           1,
		RetireAge:            60,
		CurrentMonthlyIncome: d(3000000),
		History:              domain.HybridHistory(paidMonths, d(average)),
	}
}

func periodFor(in domain.NationalInputs, asOf time.Time) domain.PeriodData {
	return CalculatePeriod(in.BirthDate, in.StartYear, in.StartMonth, in.RetireAge, asOf, in.CurrentAgeOverride)
}

func TestProject_HybridRoundTrip(t *testing.T) {
	policy := loadPolicy(t)
	in := hybridInputs(240, 2500000)
	period := periodFor(in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	result := Project(in, period, policy)

	assert.True(t, result.Eligible)
	assert.Equal(t, domain.ModeHybrid, result.Mode)
	assert.Equal(t, 240, result.TotalPaidMonths)
	assert.True(t, result.AverageIndexedIncome.Equal(d(2500000)), "Expected B 2500000, got %s", result.AverageIndexedIncome)
	// ((A+B)/2) * 0.42 * 240/480 * 12
	assert.True(t, result.AnnualBenefit.Equal(d(7173823)), "Expected annual 7173823, got %s", result.AnnualBenefit)
	assert.True(t, result.MonthlyBenefit.Equal(d(597818)), "Expected monthly 597818, got %s", result.MonthlyBenefit)
	assert.True(t, result.TotalFuturePremium.IsZero())
}

func TestProject_EligibilityGuard(t *testing.T) {
	policy := loadPolicy(t)
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("119 months no credits", func(t *testing.T) {
		in := hybridInputs(119, 2500000)
		result := Project(in, periodFor(in, asOf), policy)
		assert.False(t, result.Eligible)
		assert.True(t, result.MonthlyBenefit.IsZero())
		assert.True(t, result.AnnualBenefit.IsZero())
		assert.Equal(t, 119, result.TotalPaidMonths)
	})

	t.Run("120 months no credits", func(t *testing.T) {
		in := hybridInputs(120, 2500000)
		result := Project(in, periodFor(in, asOf), policy)
		assert.True(t, result.Eligible)
		assert.True(t, result.MonthlyBenefit.IsPositive())
	})

	t.Run("119 months with military credit", func(t *testing.T) {
		in := hybridInputs(119, 2500000)
		in.MilitaryService = true
		result := Project(in, periodFor(in, asOf), policy)
		assert.True(t, result.Eligible)
		assert.Equal(t, 12, result.TotalCreditMonths)
		assert.True(t, result.MonthlyBenefit.IsPositive())
	})
}

func TestProject_SweepShortCareer(t *testing.T) {
	policy := loadPolicy(t)
	in := shortCareerInputs()
	period := periodFor(in, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	result := Project(in, period, policy)

	require.True(t, result.Eligible)
	assert.Equal(t, domain.ModeHistoricalSweep, result.Mode)
	assert.Equal(t, 6, result.TotalPaidMonths)
	assert.Equal(t, 12, result.TotalCreditMonths)
	assert.True(t, result.AverageIndexedIncome.Equal(d(3000000)), "got %s", result.AverageIndexedIncome)
	assert.True(t, result.MonthlyCreditAmount.Equal(d(33531)), "got %s", result.MonthlyCreditAmount)
	assert.True(t, result.AnnualBenefit.Equal(d(597477)), "got %s", result.AnnualBenefit)
	assert.True(t, result.MonthlyBenefit.Equal(d(49789)), "got %s", result.MonthlyBenefit)
	// February to June at 9.5%
	assert.True(t, result.TotalFuturePremium.Equal(d(1425000)), "got %s", result.TotalFuturePremium)
}

func TestProject_ExclusionPeriods(t *testing.T) {
	policy := loadPolicy(t)
	period := periodFor(shortCareerInputs(), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))

	t.Run("unpaid months are skipped", func(t *testing.T) {
		in := shortCareerInputs()
		in.ExclusionPeriods = []domain.ExclusionPeriod{{StartYear: 2026, StartMonth: 5, EndYear: 2026, EndMonth: 6}}
		result := Project(in, period, policy)
		assert.Equal(t, 4, result.TotalPaidMonths)
		assert.Equal(t, 0, result.TotalArrearsMonths)
		assert.True(t, result.MonthlyBenefit.Equal(d(44370)), "got %s", result.MonthlyBenefit)
	})

	t.Run("arrears months count and cost", func(t *testing.T) {
		in := shortCareerInputs()
		in.ExclusionPeriods = []domain.ExclusionPeriod{{StartYear: 2026, StartMonth: 5, EndYear: 2026, EndMonth: 6, IsArrearsPayment: true}}
		result := Project(in, period, policy)
		assert.Equal(t, 6, result.TotalPaidMonths)
		assert.Equal(t, 2, result.TotalArrearsMonths)
		assert.True(t, result.TotalArrearsCost.Equal(d(570000)), "got %s", result.TotalArrearsCost)
		assert.True(t, result.MonthlyBenefit.Equal(d(49789)), "got %s", result.MonthlyBenefit)
		assert.True(t, result.TotalFuturePremium.Equal(d(855000)), "got %s", result.TotalFuturePremium)
	})

	t.Run("first matching period wins", func(t *testing.T) {
		in := shortCareerInputs()
		in.ExclusionPeriods = []domain.ExclusionPeriod{
			{StartYear: 2026, StartMonth: 5, EndYear: 2026, EndMonth: 6},
			{StartYear: 2026, StartMonth: 1, EndYear: 2026, EndMonth: 12, IsArrearsPayment: true},
		}
		result := Project(in, period, policy)
		assert.Equal(t, 4, result.TotalPaidMonths)
		assert.Equal(t, 4, result.TotalArrearsMonths)
	})
}

func TestProject_HybridHistoricalArrears(t *testing.T) {
	policy := loadPolicy(t)
	in := hybridInputs(240, 2500000)
	in.ExclusionPeriods = []domain.ExclusionPeriod{
		{StartYear: 2000, StartMonth: 1, EndYear: 2000, EndMonth: 12, IsArrearsPayment: true},
		{StartYear: 2001, StartMonth: 1, EndYear: 2001, EndMonth: 12},
	}
	result := Project(in, periodFor(in, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)), policy)

	assert.Equal(t, 252, result.TotalPaidMonths)
	assert.Equal(t, 12, result.TotalArrearsMonths)
	// 12 months at the 2026 rate of 9.5% on 3,000,000
	assert.True(t, result.TotalArrearsCost.Equal(d(3420000)), "got %s", result.TotalArrearsCost)
}

func TestProject_ModesAgreeWithinTolerance(t *testing.T) {
	policy := loadPolicy(t)
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// a career entirely under the current regime: the flat-rate
	// approximation and the per-vintage sweep should coincide
	sweep := domain.NationalInputs{
		BirthDate:            time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            2026,
		StartMonth:           1,
		RetireAge:            40,
		CurrentMonthlyIncome: d(3000000),
		History:              domain.SweepHistory(d(3000000)),
	}
	hybrid := sweep
	hybrid.History = domain.HybridHistory(0, decimal.Zero)

	a := Project(sweep, periodFor(sweep, asOf), policy)
	b := Project(hybrid, periodFor(hybrid, asOf), policy)

	require.True(t, a.Eligible)
	require.True(t, b.Eligible)
	diff := a.MonthlyBenefit.Sub(b.MonthlyBenefit).Abs()
	tolerance := a.MonthlyBenefit.Mul(decimal.NewFromFloat(0.01))
	assert.True(t, diff.LessThanOrEqual(tolerance), "sweep %s vs hybrid %s", a.MonthlyBenefit, b.MonthlyBenefit)
}

func TestProject_HybridFlatRateOnOlderVintages(t *testing.T) {
	policy := loadPolicy(t)
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// 2010-01 through 2019-12, all settled before the as-of date. Those
	// vintages carry 0.490 down to 0.445 (mean 0.4675), so the flat 0.42
	// rate should land at 0.42/0.4675 of the per-vintage sweep.
	sweep := domain.NationalInputs{
		BirthDate:            time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            2010,
		StartMonth:           1,
		RetireAge:            60,
		CurrentMonthlyIncome: d(3000000),
		History:              domain.SweepHistory(d(2000000)),
	}
	a := Project(sweep, periodFor(sweep, asOf), policy)
	require.True(t, a.Eligible)
	require.Equal(t, 120, a.TotalPaidMonths)

	// same paid months and indexed average, reported as aggregates
	hybrid := sweep
	hybrid.History = domain.HybridHistory(a.TotalPaidMonths, a.AverageIndexedIncome)
	b := Project(hybrid, periodFor(hybrid, asOf), policy)
	require.True(t, b.Eligible)
	assert.Equal(t, a.TotalPaidMonths, b.TotalPaidMonths)
	assert.True(t, b.AverageIndexedIncome.Sub(a.AverageIndexedIncome).Abs().LessThanOrEqual(d(1)))

	assert.True(t, b.MonthlyBenefit.LessThan(a.MonthlyBenefit), "flat rate understates older vintages")
	ratio := b.MonthlyBenefit.Div(a.MonthlyBenefit).InexactFloat64()
	assert.InDelta(t, 0.42/0.4675, ratio, 0.005, "sweep %s vs hybrid %s", a.MonthlyBenefit, b.MonthlyBenefit)
}

func TestProject_NonNegativeFields(t *testing.T) {
	policy := loadPolicy(t)
	in := shortCareerInputs()
	in.PostRetireMonthlyIncome = d(20000000)
	in.Claim.SetEarlyYears(5)
	in.Dependents = domain.Dependents{Spouse: true, Children: 2, Parents: 1}

	result := Project(in, periodFor(in, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)), policy)

	for name, v := range map[string]decimal.Decimal{
		"monthly":    result.MonthlyBenefit,
		"annual":     result.AnnualBenefit,
		"b":          result.AverageIndexedIncome,
		"credit":     result.MonthlyCreditAmount,
		"arrears":    result.TotalArrearsCost,
		"reduction":  result.MonthlyEarningsReduction,
		"dependents": result.AnnualDependentAddOn,
		"premium":    result.TotalFuturePremium,
	} {
		assert.False(t, v.IsNegative(), "%s is negative: %s", name, v)
		assert.True(t, v.Equal(v.Floor()), "%s is not whole: %s", name, v)
	}
	assert.True(t, result.MonthlyEarningsReduction.IsPositive())
}

func TestIncomeEstimator(t *testing.T) {
	e := incomeEstimator{
		initial:        d(1000000),
		current:        d(2000000),
		growth:         decimal.NewFromFloat(0.1),
		effectiveStart: 2000,
		currentYear:    2010,
		peakYear:       2015,
	}

	tests := []struct {
		year int
		want int64
	}{
		{2000, 1000000},
		{2005, 1500000},
		{2010, 2000000},
		{2011, 2200000},
		{2012, 2420000},
		{2015, 3221020},
		// flat after the peak year
		{2016, 3221020},
		{2020, 3221020},
	}
	for _, tt := range tests {
		got := e.monthly(tt.year)
		assert.True(t, got.Equal(d(tt.want)), "year %d: expected %d, got %s", tt.year, tt.want, got)
	}

	// peak already passed: hold current income
	late := e
	late.peakYear = 2008
	assert.True(t, late.monthly(2012).Equal(d(2000000)))
}
