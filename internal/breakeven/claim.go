package breakeven

import (
	"github.com/shopspring/decimal"
)

// maxBreakEvenAge bounds the crossover search
const maxBreakEvenAge = 100

// ClaimBreakEvenAge returns the first whole age at which cumulative receipts
// of the later-starting claim catch up with the earlier one. The arguments
// may be given in either order. It returns zero when the ages are equal, when
// the later claim pays no more per month, or when the crossover falls after
// age 100.
func ClaimBreakEvenAge(baseMonthly, altMonthly decimal.Decimal, baseAge, altAge int) int {
	if baseAge == altAge {
		return 0
	}

	earlyMonthly, lateMonthly := baseMonthly, altMonthly
	earlyAge, lateAge := baseAge, altAge
	if altAge < baseAge {
		earlyMonthly, lateMonthly = altMonthly, baseMonthly
		earlyAge, lateAge = altAge, baseAge
	}

	gap := lateMonthly.Sub(earlyMonthly)
	if !gap.IsPositive() {
		return 0
	}

	// lateMonthly*(x-lateAge) = earlyMonthly*(x-earlyAge)
	x := lateMonthly.Mul(decimal.NewFromInt(int64(lateAge))).
		Sub(earlyMonthly.Mul(decimal.NewFromInt(int64(earlyAge)))).
		Div(gap).Ceil()

	age := int(x.IntPart())
	if age > maxBreakEvenAge {
		return 0
	}
	return age
}
