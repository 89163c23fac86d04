package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/tui/components"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// NationalModel renders the national pension estimate
type NationalModel struct {
	estimate *domain.NationalEstimate
	errText  string
	width    int
}

// NewNationalModel creates the scene
func NewNationalModel() *NationalModel {
	return &NationalModel{width: 80}
}

// SetReport takes the national section of report
func (m *NationalModel) SetReport(report *domain.Report) {
	m.estimate = report.National
	m.errText = report.NationalError
}

// SetSize updates the available width
func (m *NationalModel) SetSize(width, _ int) {
	m.width = width
}

// View renders the scene
func (m *NationalModel) View() string {
	if m.estimate == nil {
		return tuistyles.InfoStyle.Render("No national pension section in this request.")
	}
	est := m.estimate
	p := est.Projection

	var sections []string
	sections = append(sections, sectionTitle("National Pension"))

	if !p.Eligible {
		sections = append(sections, tuistyles.ErrorStyle.Render("Not eligible: minimum contribution period not met"))
		if m.errText != "" {
			sections = append(sections, tuistyles.SubtitleStyle.Render(m.errText))
		}
	}

	cards := []*components.MetricCard{
		components.NewWonCard("Monthly benefit", p.MonthlyBenefit).
			WithDescription(fmt.Sprintf("%s a year", tuistyles.FormatWon(p.AnnualBenefit))),
		components.NewWonCard("After tax", est.CurrentValue.MonthlyAfterTax).
			WithDescription(fmt.Sprintf("tax %s a month", tuistyles.FormatWon(est.CurrentValue.MonthlyTax))),
		components.NewWonCard("At receipt (nominal)", est.FutureValue.Monthly).
			WithDescription(fmt.Sprintf("in %d years", est.YearsUntilReceipt)),
		components.NewMetricCard("Receipt age", fmt.Sprintf("%d", est.ReceiptAge)).
			WithDescription(fmt.Sprintf("from %d", est.ClaimStartYear)),
		components.NewMetricCard("Paid period", fmt.Sprintf("%dy %dm", est.PaidYears, est.PaidRemainderMonths)).
			WithDescription(fmt.Sprintf("%d months", p.TotalPaidMonths)),
		components.NewWonCard("B value", p.AverageIndexedIncome).
			WithDescription("average indexed income"),
	}
	sections = append(sections, components.MetricGrid(cards, gridColumns(m.width)))

	var extras []string
	if p.TotalCreditMonths > 0 {
		extras = append(extras, components.NewMetricCard("Credit months",
			fmt.Sprintf("%d (+%s a month)", p.TotalCreditMonths, tuistyles.FormatWon(p.MonthlyCreditAmount))).RenderCompact())
	}
	if p.AnnualDependentAddOn.IsPositive() {
		extras = append(extras, components.NewWonCard("Dependent add-on (annual)", p.AnnualDependentAddOn).RenderCompact())
	}
	if p.MonthlyEarningsReduction.IsPositive() {
		extras = append(extras, components.NewWonCard("Earnings test reduction", p.MonthlyEarningsReduction).RenderCompact())
	}
	if p.TotalFuturePremium.IsPositive() {
		extras = append(extras, components.NewWonCard("Premiums still to pay", p.TotalFuturePremium).RenderCompact())
	}
	if len(extras) > 0 {
		sections = append(sections, strings.Join(extras, "\n"))
	}

	if a := est.Arrears; a != nil {
		sections = append(sections, renderArrears(a))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderArrears(a *domain.ArrearsAnalysis) string {
	lines := []string{
		sectionTitle("Arrears Buy-Back"),
		components.NewMetricCard("Months", fmt.Sprintf("%d", a.Months)).RenderCompact(),
		components.NewWonCard("Cost", a.Cost).RenderCompact(),
		components.NewWonCard("Monthly increase", a.MonthlyIncrease).RenderCompact(),
	}
	if a.PaybackMonths > 0 {
		lines = append(lines, components.NewMetricCard("Payback",
			fmt.Sprintf("%d months (age %d)", a.PaybackMonths, a.PaybackAge)).RenderCompact())
	}
	lines = append(lines, components.NewWonCard("Lifetime increase", a.LifetimeIncrease).RenderCompact())
	if a.RecoveredInLifetime {
		lines = append(lines, tuistyles.MetricPositiveStyle.Render("Recovered within life expectancy"))
	} else {
		lines = append(lines, tuistyles.MetricNegativeStyle.Render("Not recovered within life expectancy"))
	}
	return strings.Join(lines, "\n")
}

func sectionTitle(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).MarginTop(1).Render(title)
}

// gridColumns fits metric cards to the terminal width
func gridColumns(width int) int {
	return min(max(width/30, 1), 3)
}
