package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/tui/components"
	"github.com/rgehrsitz/kpgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// ClaimKeys are the bindings the claim timing scene responds to
type ClaimKeys struct {
	Earlier key.Binding
	Later   key.Binding
	Select  key.Binding
}

// DefaultClaimKeys returns the claim timing bindings
func DefaultClaimKeys() ClaimKeys {
	return ClaimKeys{
		Earlier: key.NewBinding(key.WithKeys("left", "-"), key.WithHelp("←/-", "claim earlier")),
		Later:   key.NewBinding(key.WithKeys("right", "+", "="), key.WithHelp("→/+", "claim later")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick option")),
	}
}

// ClaimModel browses the claim timing comparison
type ClaimModel struct {
	comparison *domain.ClaimComparison
	slider     *components.OffsetSlider
	keys       ClaimKeys
	width      int
}

// NewClaimModel creates the scene
func NewClaimModel() *ClaimModel {
	return &ClaimModel{keys: DefaultClaimKeys(), width: 80}
}

// SetReport takes the claim timing section of report and resets the
// selection to the normal claim
func (m *ClaimModel) SetReport(report *domain.Report) {
	m.comparison = report.ClaimTiming
	m.slider = nil
	if m.comparison == nil {
		return
	}
	lo, hi := 0, 0
	for _, alt := range m.comparison.Alternatives {
		lo = min(lo, -alt.EarlyYears)
		hi = max(hi, alt.DeferYears)
	}
	m.slider = components.NewOffsetSlider("Claim offset", lo, hi).
		WithDescription("← → to move • enter to pick")
}

// SetSize updates the available width
func (m *ClaimModel) SetSize(width, _ int) {
	m.width = width
}

// Keys returns the scene bindings for the help footer
func (m *ClaimModel) Keys() ClaimKeys {
	return m.keys
}

// Offset is the selected claim offset in years
func (m *ClaimModel) Offset() int {
	if m.slider == nil {
		return 0
	}
	return m.slider.Value
}

// Selected returns the option under the slider
func (m *ClaimModel) Selected() (domain.ClaimOption, bool) {
	if m.comparison == nil {
		return domain.ClaimOption{}, false
	}
	return optionAt(m.comparison, m.Offset())
}

// Update moves the slider and emits a ClaimSelectedMsg on enter
func (m *ClaimModel) Update(msg tea.Msg) (*ClaimModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.slider == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Earlier):
		m.slider.Decrement()
	case key.Matches(keyMsg, m.keys.Later):
		m.slider.Increment()
	case key.Matches(keyMsg, m.keys.Select):
		if opt, ok := m.Selected(); ok {
			return m, func() tea.Msg { return tuimsg.ClaimSelectedMsg{Option: opt} }
		}
	}
	return m, nil
}

// View renders the scene
func (m *ClaimModel) View() string {
	cmp := m.comparison
	if cmp == nil {
		return tuistyles.InfoStyle.Render("Claim timing needs an eligible national pension section.")
	}

	selected, _ := m.Selected()
	card := components.NewClaimCard(selected, cmp.LifeExpectancyAge)
	card.IsBase = m.Offset() == 0
	card.IsBest = selected.Label == cmp.Best
	card.Selected = true

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(2).Render(m.slider.Render()),
		card.Render(),
	)

	sections := []string{
		sectionTitle(fmt.Sprintf("Claim Timing (lifetime to age %d)", cmp.LifeExpectancyAge)),
		top,
		m.renderTable(),
	}
	if len(cmp.Recommendations) > 0 {
		recs := make([]string, 0, len(cmp.Recommendations))
		for _, r := range cmp.Recommendations {
			recs = append(recs, "• "+r)
		}
		sections = append(sections, sectionTitle("Recommendations"), strings.Join(recs, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ClaimModel) renderTable() string {
	cmp := m.comparison
	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("  %-20s %16s %20s %10s", "Option", "Monthly", "Lifetime", "Break-even")))
	sb.WriteString("\n")

	for offset := m.slider.Min; offset <= m.slider.Max; offset++ {
		opt, ok := optionAt(cmp, offset)
		if !ok {
			continue
		}
		be := "-"
		if opt.BreakEvenAge > 0 {
			be = fmt.Sprintf("%d", opt.BreakEvenAge)
		}
		marker := "  "
		if opt.Label == cmp.Best {
			marker = "★ "
		}
		row := fmt.Sprintf("%s%-20s %16s %20s %10s", marker, opt.Label,
			tuistyles.FormatWon(opt.MonthlyBenefit), tuistyles.FormatWon(opt.LifetimeTotal), be)
		style := tuistyles.TableCellStyle
		if offset == m.Offset() {
			style = tuistyles.SelectedItemStyle
		}
		sb.WriteString(style.Render(row))
		sb.WriteString("\n")
	}
	return sb.String()
}

// optionAt finds the option for an offset: negative is early, positive defers
func optionAt(cmp *domain.ClaimComparison, offset int) (domain.ClaimOption, bool) {
	if offset == 0 {
		return cmp.Base, true
	}
	for _, alt := range cmp.Alternatives {
		if (offset < 0 && alt.EarlyYears == -offset) || (offset > 0 && alt.DeferYears == offset) {
			return alt, true
		}
	}
	return domain.ClaimOption{}, false
}
