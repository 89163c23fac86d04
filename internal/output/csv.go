package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter renders the report as section,field,value rows
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{
		{"section", "field", "value"},
		{"report", "calculation_id", report.CalculationID},
		{"report", "generated_at", report.GeneratedAt.Format(time.RFC3339)},
		{"report", "policy_year", strconv.Itoa(report.PolicyYear)},
	}

	if est := report.National; est != nil {
		p := est.Projection
		rows = append(rows,
			row("national", "eligible", strconv.FormatBool(p.Eligible)),
			row("national", "mode", string(p.Mode)),
			row("national", "monthly_benefit", won(p.MonthlyBenefit)),
			row("national", "annual_benefit", won(p.AnnualBenefit)),
			row("national", "average_indexed_income", won(p.AverageIndexedIncome)),
			row("national", "paid_months", strconv.Itoa(p.TotalPaidMonths)),
			row("national", "credit_months", strconv.Itoa(p.TotalCreditMonths)),
			row("national", "monthly_credit_amount", won(p.MonthlyCreditAmount)),
			row("national", "arrears_months", strconv.Itoa(p.TotalArrearsMonths)),
			row("national", "arrears_cost", won(p.TotalArrearsCost)),
			row("national", "monthly_earnings_reduction", won(p.MonthlyEarningsReduction)),
			row("national", "annual_dependent_add_on", won(p.AnnualDependentAddOn)),
			row("national", "future_premium", won(p.TotalFuturePremium)),
			row("national", "receipt_age", strconv.Itoa(est.ReceiptAge)),
			row("national", "claim_start_year", strconv.Itoa(est.ClaimStartYear)),
			row("national", "years_until_receipt", strconv.Itoa(est.YearsUntilReceipt)),
			row("national", "annual_tax", won(est.AnnualTax)),
			row("national", "monthly_after_tax", won(est.CurrentValue.MonthlyAfterTax)),
			row("national", "future_monthly", won(est.FutureValue.Monthly)),
			row("national", "future_monthly_after_tax", won(est.FutureValue.MonthlyAfterTax)),
		)
		if a := est.Arrears; a != nil {
			rows = append(rows,
				row("arrears", "monthly_increase", won(a.MonthlyIncrease)),
				row("arrears", "payback_months", strconv.Itoa(a.PaybackMonths)),
				row("arrears", "payback_age", strconv.Itoa(a.PaybackAge)),
				row("arrears", "lifetime_increase", won(a.LifetimeIncrease)),
				row("arrears", "return_on_cost", a.ReturnOnCost.StringFixed(4)),
			)
		}
	}
	if report.NationalError != "" {
		rows = append(rows, row("national", "error", report.NationalError))
	}

	if bp := report.BasicPension; bp != nil {
		rows = append(rows,
			row("basic_pension", "eligible", strconv.FormatBool(bp.Eligible)),
			row("basic_pension", "recognized_income", won(bp.RecognizedIncome)),
			row("basic_pension", "threshold", won(bp.Threshold)),
			row("basic_pension", "base_benefit", won(bp.BaseBenefit)),
			row("basic_pension", "income_offset_reduction", won(bp.IncomeOffsetReduction)),
			row("basic_pension", "estimated_monthly_benefit", won(bp.EstimatedMonthlyBenefit)),
		)
	}

	if sf := report.Shortfall; sf != nil {
		rows = append(rows,
			row("shortfall", "years_to_retire", strconv.Itoa(sf.YearsToRetire)),
			row("shortfall", "years_in_retirement", strconv.Itoa(sf.YearsInRetirement)),
			row("shortfall", "required_monthly_at_retirement", won(sf.RequiredMonthlyAtRetirement)),
			row("shortfall", "required_nest_egg", won(sf.RequiredNestEgg)),
			row("shortfall", "prepared_assets", won(sf.PreparedAssets)),
			row("shortfall", "shortfall", won(sf.Shortfall)),
			row("shortfall", "additional_monthly_savings", won(sf.AdditionalMonthlySavings)),
		)
	}

	if ct := report.ClaimTiming; ct != nil {
		for _, opt := range append([]domain.ClaimOption{ct.Base}, ct.Alternatives...) {
			rows = append(rows, row("claim_timing", opt.Label, won(opt.MonthlyBenefit)))
		}
		rows = append(rows, row("claim_timing", "best", ct.Best))
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func row(section, field, value string) []string {
	return []string{section, field, value}
}

func won(d decimal.Decimal) string {
	return d.StringFixed(0)
}
