package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS (%s)\n", analysis.AnalysisType)
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base: %s won a month at age %d\n",
		domain.FormatWon(analysis.Base.MonthlyBenefit), analysis.Base.ReceiptAge)
	fmt.Fprintln(&buf)

	for _, param := range analysis.Parameters {
		fmt.Fprintf(&buf, "%s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
		fmt.Fprintf(&buf, "%s (%s to %s, %d steps)\n",
			param.Description, formatParamValue(param, param.MinValue), formatParamValue(param, param.MaxValue), param.Steps)
		fmt.Fprintf(&buf, "%-12s %14s %10s %14s %18s\n", "Value", "Monthly", "Change", "Future", "Lifetime")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))

		for _, result := range analysis.Results {
			if result.Parameter != param.Name {
				continue
			}
			m := result.KeyMetrics
			value := formatParamValue(param, result.Value)
			if !m.Eligible {
				value += " !"
			}
			fmt.Fprintf(&buf, "%-12s %14s %9s%% %14s %18s\n",
				value,
				domain.FormatWon(m.MonthlyBenefit),
				m.MonthlyChangePct.StringFixed(1),
				domain.FormatWon(m.FutureMonthly),
				domain.FormatWon(m.LifetimeTotal))
		}

		if score, ok := analysis.Summary.SensitivityScores[param.Name]; ok {
			fmt.Fprintf(&buf, "Sensitivity score: %s\n", score.StringFixed(2))
		}
		fmt.Fprintln(&buf)
	}

	riskEmoji := ""
	switch analysis.Summary.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	case "CRITICAL":
		riskEmoji = "🚨"
	}

	fmt.Fprintf(&buf, "MOST SENSITIVE: %s\n", analysis.Summary.MostSensitiveParameter)
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, analysis.Summary.RiskLevel)
	fmt.Fprintln(&buf)

	if len(analysis.Summary.Recommendations) > 0 {
		fmt.Fprintln(&buf, "RECOMMENDATIONS:")
		for _, rec := range analysis.Summary.Recommendations {
			fmt.Fprintf(&buf, "  • %s\n", rec)
		}
	}

	return buf.String(), nil
}

// formatParamValue renders rates as percentages and everything else as is
func formatParamValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	switch param.Unit {
	case "rate":
		return v.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	case "ratio":
		return v.StringFixed(2) + "x"
	case "years":
		n := v.IntPart()
		if n > 0 {
			return fmt.Sprintf("+%dy", n)
		}
		return fmt.Sprintf("%dy", n)
	default:
		return v.String()
	}
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{
		"parameter_name", "parameter_value", "eligible", "receipt_age",
		"monthly_benefit", "monthly_change", "monthly_change_pct", "future_monthly", "lifetime_total",
	}}
	for _, result := range analysis.Results {
		m := result.KeyMetrics
		rows = append(rows, []string{
			result.Parameter,
			result.Value.String(),
			strconv.FormatBool(m.Eligible),
			strconv.Itoa(m.ReceiptAge),
			m.MonthlyBenefit.String(),
			m.MonthlyChange.String(),
			m.MonthlyChangePct.StringFixed(2),
			m.FutureMonthly.String(),
			m.LifetimeTotal.String(),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	name := strings.ToLower(strings.TrimSpace(format))
	if target, ok := aliases[name]; ok {
		name = target
	}
	switch name {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
