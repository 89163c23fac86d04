package scenes

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/tui/components"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// BasicPensionModel renders the means-test result
type BasicPensionModel struct {
	result *domain.BasicPensionResult
	width  int
}

// NewBasicPensionModel creates the scene
func NewBasicPensionModel() *BasicPensionModel {
	return &BasicPensionModel{width: 80}
}

// SetReport takes the basic pension section of report
func (m *BasicPensionModel) SetReport(report *domain.Report) {
	m.result = report.BasicPension
}

// SetSize updates the available width
func (m *BasicPensionModel) SetSize(width, _ int) {
	m.width = width
}

// View renders the scene
func (m *BasicPensionModel) View() string {
	r := m.result
	if r == nil {
		return tuistyles.InfoStyle.Render("No basic pension section in this request.")
	}

	status := tuistyles.MetricPositiveStyle.Render("Eligible")
	if !r.Eligible {
		status = tuistyles.ErrorStyle.Render("Not eligible: recognized income exceeds the threshold")
	}

	headroom := r.Threshold.Sub(r.RecognizedIncome)
	cards := []*components.MetricCard{
		components.NewWonCard("Recognized income", r.RecognizedIncome),
		components.NewWonCard("Threshold", r.Threshold).WithWonChange(headroom).WithDescription("headroom"),
		components.NewWonCard("Estimated benefit", r.EstimatedMonthlyBenefit).WithDescription("per month"),
	}

	breakdown := []string{
		sectionTitle("Recognized Income Breakdown"),
		components.NewWonCard("Income", r.Breakdown.Income).RenderCompact(),
		components.NewWonCard("Property", r.Breakdown.Property).RenderCompact(),
		components.NewWonCard("Luxury assets", r.Breakdown.Luxury).RenderCompact(),
	}
	if r.Eligible {
		breakdown = append(breakdown,
			sectionTitle("Benefit"),
			components.NewWonCard("Base benefit", r.BaseBenefit).RenderCompact(),
			components.NewWonCard("Income offset", r.IncomeOffsetReduction).RenderCompact(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		sectionTitle("Basic Pension"),
		status,
		components.MetricGrid(cards, gridColumns(m.width)),
		lipgloss.JoinVertical(lipgloss.Left, breakdown...),
	)
}
