package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()
	names := registry.List()

	assert.Len(t, names, 11)
	assert.Contains(t, names, "claim_defer")
	assert.Contains(t, names, "add_gap")
	assert.IsIncreasing(t, names)
}

func TestTransformRegistry_Create(t *testing.T) {
	registry := NewTransformRegistry()

	_, err := registry.Create("delay_ss", nil)
	assert.ErrorContains(t, err, "unknown transform")

	tr, err := registry.Create("claim_early", map[string]string{"years": "2"})
	require.NoError(t, err)
	assert.Equal(t, &ClaimEarly{Years: 2}, tr)

	_, err = registry.Create("claim_early", map[string]string{})
	assert.ErrorContains(t, err, "requires 'years'")

	_, err = registry.Create("claim_early", map[string]string{"years": "two"})
	assert.ErrorContains(t, err, "invalid years value")
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec string
		want InputTransform
	}{
		{"postpone_retirement:years=2", &PostponeRetirement{Years: 2}},
		{" set_retire_age : age = 58 ", &SetRetireAge{Age: 58}},
		{"claim_defer:years=5", &ClaimDefer{Years: 5}},
		{"claim_normal", &ClaimAtNormalAge{}},
		{"skip_arrears:", &SkipArrears{}},
		{"buy_back_arrears", &BuyBackArrears{}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	income, err := registry.ParseTransformSpec("set_income:monthly=4200000")
	require.NoError(t, err)
	assert.True(t, income.(*SetIncome).Monthly.Equal(decimal.NewFromInt(4200000)))

	gap, err := registry.ParseTransformSpec("add_gap:from=2019-04,to=2020-03,arrears=true")
	require.NoError(t, err)
	p := gap.(*AddGap).Period
	assert.Equal(t, []int{2019, 4, 2020, 3}, []int{p.StartYear, p.StartMonth, p.EndYear, p.EndMonth})
	assert.True(t, p.IsArrearsPayment)

	_, err = registry.ParseTransformSpec("claim_defer:years")
	assert.ErrorContains(t, err, "expected 'key=value'")

	_, err = registry.ParseTransformSpec(":years=1")
	assert.Error(t, err)

	_, err = registry.ParseTransformSpec("add_gap:from=2019,to=2020-03")
	assert.ErrorContains(t, err, "invalid from value")
}

func TestTransformRegistry_ParseTransformList(t *testing.T) {
	registry := NewTransformRegistry()

	chain, err := registry.ParseTransformList("postpone_retirement:years=1; claim_defer:years=2;")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "postpone_retirement", chain[0].Name())
	assert.Equal(t, "claim_defer", chain[1].Name())

	_, err = registry.ParseTransformList("claim_defer:years=2;bogus")
	assert.Error(t, err)
}
