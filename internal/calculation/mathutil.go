package calculation

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// powPrecision bounds the fractional digits kept while compounding so long
// horizons (600+ months) do not grow the mantissa without limit.
const powPrecision = 18

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	rateEps = decimal.NewFromFloat(0.000001)
)

// powInt raises base to an integer exponent by squaring
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	if exp < 0 {
		return one.DivRound(powInt(base, -exp), powPrecision)
	}
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(powPrecision)
		}
		base = base.Mul(base).Round(powPrecision)
		exp >>= 1
	}
	return result
}

// compound returns (1+rate)^periods
func compound(rate decimal.Decimal, periods int) decimal.Decimal {
	return powInt(one.Add(rate), periods)
}

// nearZero reports |r| below the annuity tolerance
func nearZero(r decimal.Decimal) bool {
	return r.Abs().LessThan(rateEps)
}

// applyProgressive sums amount across marginal tiers
func applyProgressive(tiers []domain.ProgressiveTier, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return zero
	}
	total := zero
	lower := zero
	for _, t := range tiers {
		if t.UpTo.IsZero() || amount.LessThanOrEqual(t.UpTo) {
			return total.Add(amount.Sub(lower).Mul(t.Rate))
		}
		total = total.Add(t.UpTo.Sub(lower).Mul(t.Rate))
		lower = t.UpTo
	}
	return total
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.GreaterThan(hi) {
		return hi
	}
	if v.LessThan(lo) {
		return lo
	}
	return v
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return zero
	}
	return v
}
