package calculation

import (
	"github.com/shopspring/decimal"
)

// FutureValueProjector inflates present amounts to a future year
type FutureValueProjector struct {
	InflationRate decimal.Decimal
}

// NewFutureValueProjector creates a projector with a fixed annual rate
func NewFutureValueProjector(inflationRate decimal.Decimal) *FutureValueProjector {
	return &FutureValueProjector{InflationRate: inflationRate}
}

// FutureValue returns floor(amount * (1+rate)^years). Negative years are
// treated as zero.
func (fv *FutureValueProjector) FutureValue(amount decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return amount.Floor()
	}
	return amount.Mul(compound(fv.InflationRate, years)).Floor()
}
