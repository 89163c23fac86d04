package calculation

import (
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// BasicPensionEvaluator runs the basic pension means test
type BasicPensionEvaluator struct {
	Rules domain.BasicPensionRules
}

// NewBasicPensionEvaluator creates an evaluator from policy thresholds
func NewBasicPensionEvaluator(rules domain.BasicPensionRules) *BasicPensionEvaluator {
	return &BasicPensionEvaluator{Rules: rules}
}

// earnedEvaluation applies the earned income deduction and recognition share
func (e *BasicPensionEvaluator) earnedEvaluation(income decimal.Decimal) decimal.Decimal {
	return nonNegative(income.Sub(e.Rules.EarnedIncomeDeduction)).Mul(e.Rules.EarnedIncomeRecognition)
}

// IncomeEvaluation is the monthly income component of recognized income.
// A spouse's earnings count only for couples where the spouse works.
func (e *BasicPensionEvaluator) IncomeEvaluation(in domain.BasicPensionInputs) decimal.Decimal {
	earned := e.earnedEvaluation(in.EarnedIncome)
	if in.Household == domain.HouseholdCouple && in.SpouseWorking {
		earned = earned.Add(e.earnedEvaluation(in.SpouseEarnedIncome))
	}
	return earned.Add(in.PensionIncome).Add(in.OtherIncome)
}

// PropertyEvaluation converts net assets to a monthly income equivalent
func (e *BasicPensionEvaluator) PropertyEvaluation(in domain.BasicPensionInputs) decimal.Decimal {
	general := nonNegative(in.GeneralProperty.Sub(e.Rules.PropertyDeductions[in.Region]))
	financial := nonNegative(in.FinancialProperty.Sub(e.Rules.FinancialDeduction))
	net := nonNegative(general.Add(financial).Sub(in.Debt))
	return net.Mul(e.Rules.AnnualConversionRate).Div(twelve)
}

// LuxuryEvaluation counts the full asset value once it reaches the threshold
func (e *BasicPensionEvaluator) LuxuryEvaluation(in domain.BasicPensionInputs) decimal.Decimal {
	if in.LuxuryAssetValue.GreaterThanOrEqual(e.Rules.LuxuryAssetThreshold) {
		return in.LuxuryAssetValue
	}
	return zero
}

// Evaluate computes recognized income, eligibility and the monthly benefit
func (e *BasicPensionEvaluator) Evaluate(in domain.BasicPensionInputs) domain.BasicPensionResult {
	income := e.IncomeEvaluation(in)
	property := e.PropertyEvaluation(in)
	luxury := e.LuxuryEvaluation(in)
	recognized := income.Add(property).Add(luxury)
	threshold := e.Rules.Threshold(in.Household)

	base := e.Rules.FullAmount
	if in.Household == domain.HouseholdCouple {
		base = base.Mul(decimal.NewFromInt(2)).Mul(e.Rules.CoupleReductionShare)
	}

	result := domain.BasicPensionResult{
		RecognizedIncome:        recognized.Round(0),
		Threshold:               threshold,
		Eligible:                recognized.LessThanOrEqual(threshold),
		BaseBenefit:             base.Floor(),
		IncomeOffsetReduction:   zero,
		EstimatedMonthlyBenefit: zero,
		Breakdown: domain.IncomeBreakdown{
			Income:   income.Round(0),
			Property: property.Round(0),
			Luxury:   luxury.Round(0),
		},
	}
	if !result.Eligible {
		return result
	}

	benefit := base
	if excess := recognized.Add(base).Sub(threshold); excess.IsPositive() {
		minimum := e.Rules.FullAmount.Mul(e.Rules.MinimumBenefitShare).Floor()
		benefit = decimal.Max(base.Sub(excess), minimum)
	}
	benefit = e.truncate(benefit)
	result.EstimatedMonthlyBenefit = benefit
	result.IncomeOffsetReduction = nonNegative(base.Floor().Sub(benefit))
	return result
}

// truncate drops the amount to the configured won unit
func (e *BasicPensionEvaluator) truncate(v decimal.Decimal) decimal.Decimal {
	unit := e.Rules.BenefitTruncationUnit
	if !unit.IsPositive() {
		return v.Floor()
	}
	return v.Div(unit).Floor().Mul(unit)
}
