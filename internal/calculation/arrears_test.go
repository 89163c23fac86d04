package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeArrears(t *testing.T) {
	a, err := AnalyzeArrears(12, d(1000000), d(10000), 65, 90)
	require.NoError(t, err)

	assert.Equal(t, 300, a.ReceiptMonths)
	assert.Equal(t, 100, a.PaybackMonths)
	assert.Equal(t, 73, a.PaybackAge)
	assert.True(t, a.RecoveredInLifetime)
	assert.True(t, a.LifetimeIncrease.Equal(d(3000000)))
	assert.True(t, a.ReturnOnCost.Equal(decimal.NewFromInt(2)), "got %s", a.ReturnOnCost)
}

func TestAnalyzeArrears_NoIncrease(t *testing.T) {
	a, err := AnalyzeArrears(6, d(500000), decimal.Zero, 65, 90)
	require.NoError(t, err)

	assert.Equal(t, 0, a.PaybackMonths)
	assert.False(t, a.RecoveredInLifetime)
	assert.True(t, a.ReturnOnCost.IsZero())
}

func TestAnalyzeArrears_NotRecovered(t *testing.T) {
	a, err := AnalyzeArrears(60, d(20000000), d(10000), 65, 70)
	require.NoError(t, err)

	assert.Equal(t, 2000, a.PaybackMonths)
	assert.False(t, a.RecoveredInLifetime)
	assert.True(t, a.ReturnOnCost.IsNegative())
}

func TestAnalyzeArrears_InvalidInputs(t *testing.T) {
	_, err := AnalyzeArrears(-1, d(1), d(1), 65, 90)
	assert.Error(t, err)

	_, err = AnalyzeArrears(1, d(-1), d(1), 65, 90)
	assert.Error(t, err)
}
