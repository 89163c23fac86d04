package calculation

import (
	"fmt"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyzeArrears measures how long the monthly increase bought by an arrears
// payment takes to repay its cost, and the simple return over the receipt
// horizon. receiptAge is the age benefits start; lifeExpectancyAge bounds
// the horizon.
func AnalyzeArrears(months int, cost, monthlyIncrease decimal.Decimal, receiptAge, lifeExpectancyAge int) (*domain.ArrearsAnalysis, error) {
	if months < 0 {
		return nil, fmt.Errorf("arrears months cannot be negative: %d", months)
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("arrears cost cannot be negative: %s", cost)
	}

	receiptMonths := max(0, lifeExpectancyAge-receiptAge) * 12
	increase := nonNegative(monthlyIncrease)
	lifetime := increase.Mul(decimal.NewFromInt(int64(receiptMonths)))

	a := &domain.ArrearsAnalysis{
		Months:           months,
		Cost:             cost,
		MonthlyIncrease:  increase,
		ReceiptMonths:    receiptMonths,
		LifetimeIncrease: lifetime,
		ReturnOnCost:     zero,
	}
	if increase.IsZero() {
		return a, nil
	}

	payback := cost.Div(increase).Ceil()
	a.PaybackMonths = int(payback.IntPart())
	a.PaybackAge = receiptAge + a.PaybackMonths/12
	a.RecoveredInLifetime = a.PaybackMonths <= receiptMonths
	if cost.IsPositive() {
		a.ReturnOnCost = lifetime.Sub(cost).Div(cost).Round(4)
	}
	return a, nil
}

// LifetimeReceipts totals a monthly benefit from claimAge up to
// lifeExpectancyAge. A claim at or after the horizon receives nothing.
func LifetimeReceipts(monthly decimal.Decimal, claimAge, lifeExpectancyAge int) decimal.Decimal {
	months := max(0, lifeExpectancyAge-claimAge) * 12
	return monthly.Mul(decimal.NewFromInt(int64(months)))
}
