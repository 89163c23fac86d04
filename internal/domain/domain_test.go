package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func validNationalInputs() NationalInputs {
	return NationalInputs{
		BirthDate:            time.Date(1990, time.July, 1, 0, 0, 0, 0, time.UTC),
		StartYear:            2015,
		StartMonth:           3,
		RetireAge:            60,
		CurrentMonthlyIncome: d(3000000),
		History:              SweepHistory(d(1800000)),
		WageGrowthRate:       decimal.RequireFromString("0.03"),
	}
}

func TestFormatWon(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{d(0), "0"},
		{d(999), "999"},
		{d(1000), "1,000"},
		{d(349700), "349,700"},
		{d(1234567), "1,234,567"},
		{d(-314000000), "-314,000,000"},
		{decimal.RequireFromString("49789.99"), "49,789"},
		{decimal.RequireFromString("-1000.5"), "-1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWon(tt.in))
		})
	}
}

func TestClaimAdjustment_SettersAreExclusive(t *testing.T) {
	var c ClaimAdjustment

	c.SetDeferYears(3)
	assert.Equal(t, 3, c.DeferYears)
	assert.Equal(t, 3, c.Offset())

	c.SetEarlyYears(2)
	assert.Equal(t, 2, c.EarlyYears)
	assert.Zero(t, c.DeferYears, "early claiming clears the deferral")
	assert.Equal(t, -2, c.Offset())

	c.SetDeferYears(-4)
	assert.Zero(t, c.DeferYears, "negative years clamp to zero")
	assert.Equal(t, 2, c.EarlyYears, "a zero deferral leaves the early claim alone")
	require.NoError(t, c.Validate())
}

func TestClaimAdjustment_Validate(t *testing.T) {
	err := ClaimAdjustment{EarlyYears: 1, DeferYears: 1}.Validate()
	assert.ErrorIs(t, err, ErrMutuallyExclusiveClaim)

	err = ClaimAdjustment{EarlyYears: -1}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "claim.early_years", ve.Field)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, ClaimAdjustment{}.Validate())
}

func TestClassifyMonth(t *testing.T) {
	periods := []ExclusionPeriod{
		{StartYear: 2020, StartMonth: 1, EndYear: 2020, EndMonth: 6, IsArrearsPayment: true},
		{StartYear: 2020, StartMonth: 4, EndYear: 2021, EndMonth: 2},
	}

	assert.Equal(t, Contributing, ClassifyMonth(periods, 2019, 12))
	assert.Equal(t, ExcludedWithArrears, ClassifyMonth(periods, 2020, 1))
	assert.Equal(t, ExcludedWithArrears, ClassifyMonth(periods, 2020, 5), "first matching period wins")
	assert.Equal(t, ExcludedUnpaid, ClassifyMonth(periods, 2020, 7))
	assert.Equal(t, ExcludedUnpaid, ClassifyMonth(periods, 2021, 2), "end month is inclusive")
	assert.Equal(t, Contributing, ClassifyMonth(periods, 2021, 3))
	assert.Equal(t, Contributing, ClassifyMonth(nil, 2020, 1))

	cleared := WithoutArrears(periods)
	assert.Equal(t, ExcludedUnpaid, ClassifyMonth(cleared, 2020, 1))
	assert.True(t, periods[0].IsArrearsPayment, "original periods are untouched")
}

func TestMonthClass_String(t *testing.T) {
	assert.Equal(t, "contributing", Contributing.String())
	assert.Equal(t, "excluded_unpaid", ExcludedUnpaid.String())
	assert.Equal(t, "excluded_with_arrears", ExcludedWithArrears.String())
	assert.Equal(t, "unknown", MonthClass(9).String())
}

func TestIncomeHistory_Validate(t *testing.T) {
	tests := []struct {
		name    string
		history IncomeHistory
		field   string
	}{
		{"sweep", SweepHistory(d(1000000)), ""},
		{"hybrid", HybridHistory(120, d(2500000)), ""},
		{"sweep without payload", IncomeHistory{Mode: ModeHistoricalSweep}, "income_history.historical_sweep"},
		{"sweep with hybrid payload", IncomeHistory{Mode: ModeHistoricalSweep, Sweep: &HistoricalSweepInputs{}, Hybrid: &HybridInputs{}}, "income_history.hybrid"},
		{"hybrid without payload", IncomeHistory{Mode: ModeHybrid}, "income_history.hybrid"},
		{"hybrid negative months", HybridHistory(-1, d(0)), "income_history.hybrid.total_paid_months"},
		{"negative salary", SweepHistory(d(-1)), "income_history.historical_sweep.initial_salary"},
		{"unknown mode", IncomeHistory{Mode: "guess"}, "income_history.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.history.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNationalInputs_Validate(t *testing.T) {
	require.NoError(t, validNationalInputs().Validate())

	tests := []struct {
		name   string
		mutate func(in *NationalInputs)
		field  string
	}{
		{"missing birth date", func(in *NationalInputs) { in.BirthDate = time.Time{} }, "birth_date"},
		{"bad start month", func(in *NationalInputs) { in.StartMonth = 13 }, "start_month"},
		{"retire age out of range", func(in *NationalInputs) { in.RetireAge = 0 }, "retire_age"},
		{"negative income", func(in *NationalInputs) { in.CurrentMonthlyIncome = d(-1) }, "current_monthly_income"},
		{"wage growth at -100%", func(in *NationalInputs) { in.WageGrowthRate = d(-1) }, "wage_growth_rate"},
		{"inverted exclusion", func(in *NationalInputs) {
			in.ExclusionPeriods = []ExclusionPeriod{{StartYear: 2021, StartMonth: 1, EndYear: 2020, EndMonth: 1}}
		}, "exclusion_periods"},
		{"both claim adjustments", func(in *NationalInputs) { in.Claim = ClaimAdjustment{EarlyYears: 1, DeferYears: 2} }, "claim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNationalInputs()
			tt.mutate(&in)
			var ve *ValidationError
			require.ErrorAs(t, in.Validate(), &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNationalInputs_Clone(t *testing.T) {
	age := 35
	in := validNationalInputs()
	in.CurrentAgeOverride = &age
	in.ExclusionPeriods = []ExclusionPeriod{{StartYear: 2020, StartMonth: 1, EndYear: 2020, EndMonth: 12}}

	out := in.Clone()
	*out.CurrentAgeOverride = 40
	out.ExclusionPeriods[0].IsArrearsPayment = true
	out.History.Sweep.InitialSalary = d(1)

	assert.Equal(t, 35, *in.CurrentAgeOverride)
	assert.False(t, in.ExclusionPeriods[0].IsArrearsPayment)
	assert.Equal(t, "1800000", in.History.Sweep.InitialSalary.String())
}

func TestBasicPensionInputs_Validate(t *testing.T) {
	assert.NoError(t, BasicPensionInputs{Household: HouseholdCouple, Region: RegionRural}.Validate())

	var ve *ValidationError
	require.ErrorAs(t, BasicPensionInputs{Household: "family", Region: RegionMetro}.Validate(), &ve)
	assert.Equal(t, "household", ve.Field)

	require.ErrorAs(t, BasicPensionInputs{Household: HouseholdSingle, Region: "island"}.Validate(), &ve)
	assert.Equal(t, "region", ve.Field)

	require.ErrorAs(t, BasicPensionInputs{Household: HouseholdSingle, Region: RegionCity, Debt: d(-5)}.Validate(), &ve)
	assert.Equal(t, "debt", ve.Field)
}

func TestShortfallInputs_Validate(t *testing.T) {
	ok := ShortfallInputs{CurrentAge: 30, RetireAge: 60, LifeExpectancyAge: 90}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.RetireAge = 30
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAgeOrder)

	bad = ok
	bad.LifeExpectancyAge = 60
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAgeOrder)

	bad = ok
	bad.InflationRate = d(-1)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)
	assert.False(t, errors.Is(bad.Validate(), ErrInvalidAgeOrder))
}

func TestPolicyLookups(t *testing.T) {
	rules := NationalPensionRules{
		RevaluationFactors:        map[int]decimal.Decimal{2020: decimal.RequireFromString("1.25")},
		PremiumRates:              map[int]decimal.Decimal{2026: decimal.RequireFromString("0.095"), 2027: decimal.RequireFromString("0.10")},
		PremiumRateBeforeSchedule: decimal.RequireFromString("0.09"),
		PremiumRateAfterSchedule:  decimal.RequireFromString("0.13"),
	}

	assert.Equal(t, "1.25", rules.RevaluationFactor(2020).String())
	assert.Equal(t, "1", rules.RevaluationFactor(2025).String())

	assert.Equal(t, "0.09", rules.PremiumRate(2000).String())
	assert.Equal(t, "0.095", rules.PremiumRate(2026).String())
	assert.Equal(t, "0.13", rules.PremiumRate(2040).String())

	schedule := ReplacementSchedule{
		Tiers: []ReplacementTier{
			{FromYear: 1988, ToYear: 1998, Rate: decimal.RequireFromString("0.70")},
			{FromYear: 2009, ToYear: 2027, Rate: decimal.RequireFromString("0.50"), AnnualStep: decimal.RequireFromString("0.005")},
		},
		CurrentRate: decimal.RequireFromString("0.43"),
	}
	assert.Equal(t, "0.7", schedule.RateFor(1990).String())
	assert.Equal(t, "0.5", schedule.RateFor(2009).String())
	assert.Equal(t, "0.49", schedule.RateFor(2011).String())
	assert.Equal(t, "0.43", schedule.RateFor(2030).String())

	bp := BasicPensionRules{ThresholdSingle: d(2470000), ThresholdCouple: d(3952000)}
	assert.Equal(t, "2470000", bp.Threshold(HouseholdSingle).String())
	assert.Equal(t, "3952000", bp.Threshold(HouseholdCouple).String())
}

func TestRequest_IsEmpty(t *testing.T) {
	assert.True(t, (&Request{}).IsEmpty())
	assert.False(t, (&Request{Shortfall: &ShortfallInputs{}}).IsEmpty())
}

func TestSensitivitySummary(t *testing.T) {
	ss := SensitivitySummary{
		MostSensitiveParameter: "claim_offset",
		SensitivityScores:      map[string]decimal.Decimal{"claim_offset": d(40), "inflation_rate": d(0)},
	}
	assert.Equal(t, "CRITICAL", ss.DetermineRiskLevel())
	recs := ss.GenerateRecommendations()
	assert.Contains(t, recs, "Claim timing matters most; compare claim ages before applying")

	ss.SensitivityScores = map[string]decimal.Decimal{"inflation_rate": d(2)}
	assert.Equal(t, "LOW", ss.DetermineRiskLevel())

	p := SensitivityParameter{MinValue: d(-2), MaxValue: d(2), Steps: 5}
	values := p.Values()
	require.Len(t, values, 5)
	assert.Equal(t, "-2", values[0].String())
	assert.Equal(t, "0", values[2].String())
	assert.Equal(t, "2", values[4].String())

	p.Steps = 1
	p.BaseValue = d(7)
	assert.Equal(t, []decimal.Decimal{d(7)}, p.Values())
}
