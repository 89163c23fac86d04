package scenes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/tui/components"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// ShortfallModel renders the retirement savings gap and its trajectory
type ShortfallModel struct {
	result *domain.ShortfallResult
	width  int
	height int
}

// NewShortfallModel creates the scene
func NewShortfallModel() *ShortfallModel {
	return &ShortfallModel{width: 80, height: 24}
}

// SetReport takes the shortfall section of report
func (m *ShortfallModel) SetReport(report *domain.Report) {
	m.result = report.Shortfall
}

// SetSize updates the available area
func (m *ShortfallModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the scene
func (m *ShortfallModel) View() string {
	r := m.result
	if r == nil {
		return tuistyles.InfoStyle.Render("No shortfall section in this request.")
	}

	gap := components.NewWonCard("Shortfall", r.Shortfall).
		WithDescription(fmt.Sprintf("save %s more a month", tuistyles.FormatWon(r.AdditionalMonthlySavings)))
	if !r.Shortfall.IsPositive() {
		gap = components.NewWonCard("Surplus", r.Shortfall.Neg()).WithDescription("on track")
	}
	cards := []*components.MetricCard{
		components.NewWonCard("Required nest egg", r.RequiredNestEgg).
			WithDescription(fmt.Sprintf("%d years in retirement", r.YearsInRetirement)),
		components.NewWonCard("Prepared at retirement", r.PreparedAssets).
			WithDescription(fmt.Sprintf("in %d years", r.YearsToRetire)),
		gap,
	}

	bar := components.NewFundingBar(r.PreparedAssets, r.RequiredNestEgg).
		WithLabel("Funded").
		WithWidth(max(min(m.width-20, 50), 10))

	return lipgloss.JoinVertical(lipgloss.Left,
		sectionTitle("Retirement Savings"),
		components.MetricGrid(cards, gridColumns(m.width)),
		"",
		bar.Render(),
		"",
		m.trajectoryChart(),
	)
}

func (m *ShortfallModel) trajectoryChart() string {
	points := m.result.Trajectory
	if len(points) < 2 {
		return ""
	}
	prepared := make([]float64, len(points))
	ideal := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		prepared[i] = p.Prepared.InexactFloat64()
		ideal[i] = p.Ideal.InexactFloat64()
		labels[i] = fmt.Sprintf("age %d", p.Age)
	}

	return components.NewASCIIChart("Savings trajectory").
		AddSeries("current plan", prepared, tuistyles.ColorChartLine1).
		AddSeries("with extra savings", ideal, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(max(min(m.width-4, 80), 30), max(min(m.height-22, 12), 6)).
		Render()
}
