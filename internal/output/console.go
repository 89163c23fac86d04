package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// ConsoleFormatter renders a styled human-readable report
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("KOREAN PENSION ESTIMATE"))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(fmt.Sprintf("Policy %d  •  %s  •  %s",
		report.PolicyYear, report.GeneratedAt.Format("2006-01-02 15:04"), report.CalculationID)))
	sb.WriteString("\n")

	if report.National != nil {
		writeNational(&sb, report.National, report.NationalError)
	} else if report.NationalError != "" {
		section(&sb, "National Pension")
		sb.WriteString(warnStyle.Render(report.NationalError) + "\n")
	}
	if report.BasicPension != nil {
		writeBasicPension(&sb, report.BasicPension)
	}
	if report.Shortfall != nil {
		writeShortfall(&sb, report.Shortfall)
	}
	if report.ClaimTiming != nil {
		writeClaimTiming(&sb, report.ClaimTiming)
	}

	return []byte(sb.String()), nil
}

func section(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render(strings.ToUpper(title)))
	sb.WriteString("\n")
}

func line(sb *strings.Builder, label, value string) {
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-30s", label)))
	sb.WriteString(valueStyle.Render(value))
	sb.WriteString("\n")
}

func wonText(d decimal.Decimal) string {
	return domain.FormatWon(d) + " won"
}

func writeNational(sb *strings.Builder, est *domain.NationalEstimate, nationalErr string) {
	p := est.Projection
	section(sb, "National Pension")

	if !p.Eligible {
		sb.WriteString(warnStyle.Render("  Not eligible: minimum contribution period not met") + "\n")
		if nationalErr != "" {
			sb.WriteString(labelStyle.Render("  "+nationalErr) + "\n")
		}
	}

	line(sb, "Monthly benefit", wonText(p.MonthlyBenefit))
	line(sb, "Annual benefit", wonText(p.AnnualBenefit))
	line(sb, "After-tax monthly", wonText(est.CurrentValue.MonthlyAfterTax))
	line(sb, "Receipt age", fmt.Sprintf("%d (%d, in %d years)", est.ReceiptAge, est.ClaimStartYear, est.YearsUntilReceipt))
	line(sb, "Paid period", fmt.Sprintf("%d years %d months", est.PaidYears, est.PaidRemainderMonths))
	line(sb, "Average indexed income (B)", wonText(p.AverageIndexedIncome))
	if p.TotalCreditMonths > 0 {
		line(sb, "Credit months", fmt.Sprintf("%d (+%s a month)", p.TotalCreditMonths, wonText(p.MonthlyCreditAmount)))
	}
	if p.AnnualDependentAddOn.IsPositive() {
		line(sb, "Dependent add-on", wonText(p.AnnualDependentAddOn)+" a year")
	}
	if p.MonthlyEarningsReduction.IsPositive() {
		line(sb, "Earnings test reduction", wonText(p.MonthlyEarningsReduction)+" a month")
	}
	if p.TotalFuturePremium.IsPositive() {
		line(sb, "Premiums still to pay", wonText(p.TotalFuturePremium))
	}

	line(sb, "Future value at receipt", wonText(est.FutureValue.Monthly))
	line(sb, "Future value after tax", wonText(est.FutureValue.MonthlyAfterTax))

	if a := est.Arrears; a != nil {
		section(sb, "Arrears Buy-Back")
		line(sb, "Months bought back", fmt.Sprintf("%d", a.Months))
		line(sb, "Cost", wonText(a.Cost))
		line(sb, "Monthly increase", wonText(a.MonthlyIncrease))
		if a.PaybackMonths > 0 {
			line(sb, "Payback", fmt.Sprintf("%d months (age %d)", a.PaybackMonths, a.PaybackAge))
		}
		line(sb, "Lifetime increase", wonText(a.LifetimeIncrease))
		verdict := warnStyle.Render("not recovered within life expectancy")
		if a.RecoveredInLifetime {
			verdict = goodStyle.Render("recovered within life expectancy")
		}
		sb.WriteString("  " + verdict + "\n")
	}
}

func writeBasicPension(sb *strings.Builder, bp *domain.BasicPensionResult) {
	section(sb, "Basic Pension")
	line(sb, "Recognized income", wonText(bp.RecognizedIncome))
	line(sb, "Threshold", wonText(bp.Threshold))
	if !bp.Eligible {
		sb.WriteString(warnStyle.Render("  Not eligible: recognized income exceeds the threshold") + "\n")
		return
	}
	line(sb, "Base benefit", wonText(bp.BaseBenefit))
	if bp.IncomeOffsetReduction.IsPositive() {
		line(sb, "Income offset", wonText(bp.IncomeOffsetReduction))
	}
	line(sb, "Estimated monthly benefit", wonText(bp.EstimatedMonthlyBenefit))
}

func writeShortfall(sb *strings.Builder, sf *domain.ShortfallResult) {
	section(sb, "Retirement Savings")
	line(sb, "Years to retirement", fmt.Sprintf("%d", sf.YearsToRetire))
	line(sb, "Years in retirement", fmt.Sprintf("%d", sf.YearsInRetirement))
	line(sb, "Monthly need at retirement", wonText(sf.RequiredMonthlyAtRetirement))
	line(sb, "Required nest egg", wonText(sf.RequiredNestEgg))
	line(sb, "Prepared assets", wonText(sf.PreparedAssets))
	if sf.Shortfall.IsPositive() {
		line(sb, "Shortfall", warnStyle.Render(wonText(sf.Shortfall)))
		line(sb, "Additional monthly savings", wonText(sf.AdditionalMonthlySavings))
	} else {
		line(sb, "Surplus", goodStyle.Render(wonText(sf.Shortfall.Neg())))
	}
}

func writeClaimTiming(sb *strings.Builder, ct *domain.ClaimComparison) {
	section(sb, "Claim Timing")
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  Lifetime totals to age %d", ct.LifeExpectancyAge)) + "\n")

	options := append([]domain.ClaimOption{ct.Base}, ct.Alternatives...)
	for _, opt := range options {
		marker := "  "
		if opt.Label == ct.Best {
			marker = goodStyle.Render("* ")
		}
		sb.WriteString(fmt.Sprintf("%s%-20s %14s  %18s\n",
			marker, opt.Label, wonText(opt.MonthlyBenefit), wonText(opt.LifetimeTotal)))
	}
	for _, rec := range ct.Recommendations {
		sb.WriteString("  • " + rec + "\n")
	}
}
