package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("NATIONAL PENSION SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Input File:    %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Monthly",
		numWidth, "After Tax",
		6, "Age",
		numWidth+6, "Lifetime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Monthly Benefit:  %s%s won (%s%%)\n",
				tf.deltaSymbol(alt.MonthlyDiffFromBase),
				domain.FormatWon(alt.MonthlyDiffFromBase),
				alt.MonthlyPctFromBase.StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Lifetime Total:   %s%s won\n",
				tf.deltaSymbol(alt.LifetimeDiffFromBase),
				domain.FormatWon(alt.LifetimeDiffFromBase)))
			if alt.PaidMonthsDiff != 0 {
				sign := "+"
				if alt.PaidMonthsDiff < 0 {
					sign = ""
				}
				sb.WriteString(fmt.Sprintf("  Paid Months:      %s%d\n", sign, alt.PaidMonthsDiff))
			}
			if !alt.Eligible {
				sb.WriteString("  Not eligible: minimum contribution period not met\n")
			}
		}
		sb.WriteString("\n")
	}

	tf.writeRecommendations(&sb, compSet.Recommendations)
	return sb.String()
}

// FormatClaimTiming renders the early/normal/deferred claim table
func (tf *TableFormatter) FormatClaimTiming(cmp *domain.ClaimComparison) string {
	var sb strings.Builder

	sb.WriteString("CLAIM TIMING COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Lifetime totals run to age %d\n\n", cmp.LifeExpectancyAge))

	sb.WriteString(fmt.Sprintf("%-20s %12s %12s %16s %16s %8s\n",
		"Option", "Monthly", "vs Normal", "Lifetime", "vs Normal", "Cross"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	options := make([]domain.ClaimOption, 0, len(cmp.Alternatives)+1)
	for _, alt := range cmp.Alternatives {
		if alt.EarlyYears > 0 {
			options = append(options, alt)
		}
	}
	options = append(options, cmp.Base)
	for _, alt := range cmp.Alternatives {
		if alt.EarlyYears == 0 {
			options = append(options, alt)
		}
	}

	for _, opt := range options {
		marker := " "
		if opt.Label == cmp.Best {
			marker = "*"
		}
		cross := "-"
		if opt.BreakEvenAge > 0 {
			cross = fmt.Sprintf("%d", opt.BreakEvenAge)
		}
		sb.WriteString(fmt.Sprintf("%s%-19s %12s %12s %16s %16s %8s\n",
			marker,
			tf.truncate(opt.Label, 19),
			domain.FormatWon(opt.MonthlyBenefit),
			tf.signedWon(opt.MonthlyDiffFromBase),
			domain.FormatWon(opt.LifetimeTotal),
			tf.signedWon(opt.LifetimeDiffFromBase),
			cross))
	}
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("* largest lifetime total: %s\n\n", cmp.Best))

	tf.writeRecommendations(&sb, cmp.Recommendations)
	return sb.String()
}

func (tf *TableFormatter) writeRecommendations(sb *strings.Builder, recs []string) {
	if len(recs) == 0 {
		return
	}
	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("• %s\n", rec))
	}
	sb.WriteString("\n")
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*d %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, domain.FormatWon(result.MonthlyBenefit),
		numWidth, domain.FormatWon(result.AfterTaxMonthly),
		6, result.ReceiptAge,
		numWidth+6, domain.FormatWon(result.LifetimeTotal))
}

// formatShort formats a decimal in 만 (10,000) or 억 (100,000,000) units
func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000000)) {
		eok := d.Div(decimal.NewFromInt(100000000))
		return eok.StringFixed(2) + "억"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		man := d.Div(decimal.NewFromInt(10000))
		return man.StringFixed(0) + "만"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) signedWon(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return tf.deltaSymbol(d) + domain.FormatWon(d)
}

// deltaSymbol returns a + for gains; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.MonthlyDiffFromBase.IsPositive() {
			change = "+" + tf.formatShort(alt.MonthlyDiffFromBase) + "/mo"
		} else if alt.MonthlyDiffFromBase.IsNegative() {
			change = tf.formatShort(alt.MonthlyDiffFromBase) + "/mo"
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
