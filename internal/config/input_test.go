package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRequest = `
national:
  birth_date: 1975-06-15
  start_year: 2001
  start_month: 3
  retire_age: 60
  current_monthly_income: 4500000
  wage_growth_rate: 0.03
  income_history:
    mode: historical_sweep
    historical_sweep:
      initial_salary: 1800000
  exclusion_periods:
    - start_year: 2010
      start_month: 1
      end_year: 2010
      end_month: 12
      arrears_payment: true
  military_service: true
  child_count: 2
  dependents:
    spouse: true
    children: 1
  claim:
    defer_years: 2
basic_pension:
  household: couple
  spouse_working: true
  region: city
  earned_income: 1500000
  spouse_earned_income: 1000000
  general_property: 150000000
shortfall:
  current_age: 40
  retire_age: 60
  life_expectancy_age: 90
  target_monthly_spend: 3000000
  expected_pension_monthly: 1200000
  current_assets: 50000000
  monthly_savings: 500000
  pre_retirement_return: 0.05
  post_retirement_return: 0.03
  inflation_rate: 0.025
`

func TestInputParser_Parse(t *testing.T) {
	req, err := NewInputParser().Parse([]byte(sampleRequest))
	require.NoError(t, err)

	require.NotNil(t, req.National)
	n := req.National
	assert.Equal(t, time.Date(1975, 6, 15, 0, 0, 0, 0, time.UTC), n.BirthDate.UTC())
	assert.Equal(t, domain.ModeHistoricalSweep, n.History.Mode)
	require.NotNil(t, n.History.Sweep)
	assert.True(t, n.History.Sweep.InitialSalary.Equal(decimal.NewFromInt(1800000)))
	require.Len(t, n.ExclusionPeriods, 1)
	assert.True(t, n.ExclusionPeriods[0].IsArrearsPayment)
	assert.Equal(t, 2, n.Claim.DeferYears)
	assert.True(t, n.Dependents.Spouse)

	require.NotNil(t, req.BasicPension)
	assert.Equal(t, domain.HouseholdCouple, req.BasicPension.Household)
	assert.Equal(t, domain.RegionCity, req.BasicPension.Region)

	require.NotNil(t, req.Shortfall)
	assert.True(t, req.Shortfall.InflationRate.Equal(decimal.NewFromFloat(0.025)))
}

func TestInputParser_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRequest), 0o600))

	req, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, req.National)

	_, err = NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInputParser_ValidateRequest(t *testing.T) {
	ip := NewInputParser()

	t.Run("empty request", func(t *testing.T) {
		err := ip.ValidateRequest(&domain.Request{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("shortfall age order", func(t *testing.T) {
		err := ip.ValidateRequest(&domain.Request{Shortfall: &domain.ShortfallInputs{
			CurrentAge: 60, RetireAge: 60, LifeExpectancyAge: 90,
		}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidAgeOrder))
		assert.Contains(t, err.Error(), "shortfall")
	})

	t.Run("both claim adjustments", func(t *testing.T) {
		_, err := ip.Parse([]byte(`
national:
  birth_date: 1975-06-15
  start_year: 2001
  start_month: 3
  retire_age: 60
  current_monthly_income: 4500000
  income_history:
    mode: hybrid
    hybrid:
      total_paid_months: 200
      average_monthly_income: 3000000
  claim:
    early_years: 2
    defer_years: 1
`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMutuallyExclusiveClaim))
	})

	t.Run("unknown household", func(t *testing.T) {
		err := ip.ValidateRequest(&domain.Request{BasicPension: &domain.BasicPensionInputs{
			Household: "triple", Region: domain.RegionMetro,
		}})
		require.Error(t, err)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "household", ve.Field)
	})
}
