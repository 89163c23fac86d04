package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	rows := [][]string{{
		"Scenario",
		"Type",
		"Eligible",
		"Retire Age",
		"Receipt Age",
		"Paid Months",
		"Monthly Benefit",
		"After Tax Monthly",
		"Lifetime Total",
		"Monthly Diff from Base",
		"Monthly % Change",
		"Lifetime Diff from Base",
	}}

	rows = append(rows, cf.formatRow(compSet.BaseResult, "base"))
	for i := range compSet.AlternativeResults {
		rows = append(rows, cf.formatRow(&compSet.AlternativeResults[i], "alternative"))
	}

	return writeCSV(rows)
}

// FormatClaimTiming generates one CSV row per claiming option
func (cf *CSVFormatter) FormatClaimTiming(cmp *domain.ClaimComparison) (string, error) {
	rows := [][]string{{
		"Option",
		"Early Years",
		"Defer Years",
		"Claim Age",
		"Monthly Benefit",
		"Lifetime Total",
		"Monthly Diff from Normal",
		"Lifetime Diff from Normal",
		"Break-even Age",
	}}

	for _, opt := range append([]domain.ClaimOption{cmp.Base}, cmp.Alternatives...) {
		rows = append(rows, []string{
			opt.Label,
			formatInt(opt.EarlyYears),
			formatInt(opt.DeferYears),
			formatInt(opt.ClaimAge),
			opt.MonthlyBenefit.StringFixed(0),
			opt.LifetimeTotal.StringFixed(0),
			opt.MonthlyDiffFromBase.StringFixed(0),
			opt.LifetimeDiffFromBase.StringFixed(0),
			formatInt(opt.BreakEvenAge),
		})
	}

	return writeCSV(rows)
}

func writeCSV(rows [][]string) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		fmt.Sprintf("%t", result.Eligible),
		formatInt(result.RetireAge),
		formatInt(result.ReceiptAge),
		formatInt(result.PaidMonths),
		result.MonthlyBenefit.StringFixed(0),
		result.AfterTaxMonthly.StringFixed(0),
		result.LifetimeTotal.StringFixed(0),
		result.MonthlyDiffFromBase.StringFixed(0),
		result.MonthlyPctFromBase.StringFixed(2),
		result.LifetimeDiffFromBase.StringFixed(0),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
