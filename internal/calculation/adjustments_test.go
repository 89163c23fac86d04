package calculation

import (
	"testing"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreditMonths(t *testing.T) {
	rules := loadPolicy(t).National.Credits

	tests := []struct {
		name     string
		military bool
		children int
		want     int
	}{
		{"none", false, 0, 0},
		{"military only", true, 0, 12},
		{"one child", false, 1, 12},
		{"two children", false, 2, 24},
		{"three children and military", true, 3, 54},
		{"four children", false, 4, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreditMonths(rules, tt.military, tt.children))
		})
	}
}

func TestDependentAddOn(t *testing.T) {
	rules := loadPolicy(t).National.Dependents

	got := DependentAddOn(rules, domain.Dependents{Spouse: true, Children: 2, Parents: 1})
	assert.True(t, got.Equal(d(306000+3*203000)), "got %s", got)
	assert.True(t, DependentAddOn(rules, domain.Dependents{}).IsZero())
}

func TestApplyClaimAdjustment(t *testing.T) {
	rules := loadPolicy(t).National
	yearly := d(12000000)
	addOn := d(306000)

	tests := []struct {
		name  string
		claim func() domain.ClaimAdjustment
		want  string
	}{
		{"normal", func() domain.ClaimAdjustment { return domain.ClaimAdjustment{} }, "12000000"},
		{"early reduces the add-on too", func() domain.ClaimAdjustment {
			var c domain.ClaimAdjustment
			c.SetEarlyYears(3)
			return c
		}, "9840000"},
		{"deferral bonus excludes the add-on", func() domain.ClaimAdjustment {
			var c domain.ClaimAdjustment
			c.SetDeferYears(2)
			return c
		}, "13683936"},
		{"early reduction never goes negative", func() domain.ClaimAdjustment {
			return domain.ClaimAdjustment{EarlyYears: 20}
		}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyClaimAdjustment(yearly, addOn, tt.claim(), rules)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, got.Equal(want), "Expected %s, got %s", want, got)
		})
	}
}

func TestClaimAdjustmentExclusivity(t *testing.T) {
	var c domain.ClaimAdjustment
	c.SetEarlyYears(3)
	c.SetDeferYears(2)
	assert.Equal(t, 0, c.EarlyYears)
	assert.Equal(t, 2, c.DeferYears)

	c.SetEarlyYears(1)
	assert.Equal(t, 1, c.EarlyYears)
	assert.Equal(t, 0, c.DeferYears)
}

func TestEarningsTestReduction(t *testing.T) {
	rules := loadPolicy(t).National.EarningsTest
	bigBenefit := d(10000000)

	tests := []struct {
		name    string
		income  int64
		benefit decimal.Decimal
		want    int64
	}{
		{"below limit", 4000000, bigBenefit, 0},
		{"at limit", 5090000, bigBenefit, 0},
		{"first tier", 5590000, bigBenefit, 25000},
		{"tier boundary", 6090000, bigBenefit, 50000},
		{"third tier", 7590000, bigBenefit, 225000},
		{"top tier", 10090000, bigBenefit, 750000},
		{"capped at half the benefit", 10090000, d(1000000), 500000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EarningsTestReduction(rules, d(tt.income), tt.benefit)
			assert.True(t, got.Equal(d(tt.want)), "Expected %d, got %s", tt.want, got)
		})
	}
}

func TestEarningsTestReduction_Monotonic(t *testing.T) {
	rules := loadPolicy(t).National.EarningsTest
	benefit := d(2000000)
	ceiling := benefit.Div(d(2))

	prev := EarningsTestReduction(rules, rules.LimitMonthly, benefit)
	assert.True(t, prev.IsZero())
	for income := int64(5100000); income <= 9000000; income += 250000 {
		got := EarningsTestReduction(rules, d(income), benefit)
		assert.True(t, got.GreaterThan(prev), "reduction should increase at %d", income)
		assert.True(t, got.LessThanOrEqual(ceiling))
		prev = got
	}
}
