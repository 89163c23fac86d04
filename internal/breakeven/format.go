package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalRetireAge != nil {
		sb.WriteString(fmt.Sprintf("Contribute Until Age: %d\n", *result.OptimalRetireAge))
	}
	if result.OptimalMonthlyIncome != nil {
		sb.WriteString(fmt.Sprintf("Monthly Income:       %s won\n", domain.FormatWon(*result.OptimalMonthlyIncome)))
	}
	if result.OptimalClaimOffset != nil {
		sb.WriteString(fmt.Sprintf("Claim Offset:         %s years\n", tf.signed(*result.OptimalClaimOffset)))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Benefit:  %s won\n", domain.FormatWon(result.MonthlyBenefit)))
	sb.WriteString(fmt.Sprintf("Receipt Age:      %d\n", result.ReceiptAge))
	sb.WriteString(fmt.Sprintf("Lifetime Total:   %s won\n", domain.FormatWon(result.LifetimeTotal)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO CURRENT INPUTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current Monthly:  %s won\n", domain.FormatWon(result.BaseMonthlyBenefit)))
	sb.WriteString(fmt.Sprintf("Monthly Change:   %s%s won\n",
		tf.deltaSymbol(result.MonthlyDiffFromBase), domain.FormatWon(result.MonthlyDiffFromBase)))
	sb.WriteString(fmt.Sprintf("Lifetime Change:  %s%s won\n",
		tf.deltaSymbol(result.LifetimeDiffFromBase), domain.FormatWon(result.LifetimeDiffFromBase)))
	sb.WriteString("\n")

	if result.Goal == GoalMatchBenefit && result.Request.Constraints.TargetMonthlyBenefit != nil {
		target := *result.Request.Constraints.TargetMonthlyBenefit
		diff := result.MonthlyBenefit.Sub(target)
		sb.WriteString("TARGET BENEFIT MATCH\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Target Monthly:   %s won\n", domain.FormatWon(target)))
		sb.WriteString(fmt.Sprintf("Achieved Monthly: %s won\n", domain.FormatWon(result.MonthlyBenefit)))
		sb.WriteString(fmt.Sprintf("Difference:       %s%s won\n", tf.deltaSymbol(diff), domain.FormatWon(diff)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %-18s %12s %8s %15s\n",
		"Optimization", "Goal", "Monthly", "Age", "Lifetime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-20s %-18s %12s %8d %15s\n",
			tf.truncate(string(res.Target), 20),
			tf.truncate(string(res.Goal), 18),
			domain.FormatWon(res.MonthlyBenefit),
			res.ReceiptAge,
			tf.formatShort(res.LifetimeTotal)))
	}
	sb.WriteString("\n")

	sb.WriteString("BEST SCENARIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.BestByMonthly != nil {
		sb.WriteString(fmt.Sprintf("Best Monthly:   %s (%s won)\n",
			result.BestByMonthly.Target, domain.FormatWon(result.BestByMonthly.MonthlyBenefit)))
	}
	if result.BestByLifetime != nil {
		sb.WriteString(fmt.Sprintf("Best Lifetime:  %s (%s won)\n",
			result.BestByLifetime.Target, domain.FormatWon(result.BestByLifetime.LifetimeTotal)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

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

func (tf *TableFormatter) signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return ""
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
