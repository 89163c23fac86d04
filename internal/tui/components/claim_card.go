package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/domain"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// ClaimCard summarizes one claiming option against the normal-age claim
type ClaimCard struct {
	Option   domain.ClaimOption
	IsBase   bool
	IsBest   bool
	LifeAge  int
	Width    int
	Selected bool
}

// NewClaimCard creates a card for opt
func NewClaimCard(opt domain.ClaimOption, lifeAge int) *ClaimCard {
	return &ClaimCard{Option: opt, LifeAge: lifeAge, Width: 46}
}

// Render returns the bordered card
func (c *ClaimCard) Render() string {
	var sb strings.Builder

	title := tuistyles.SelectedItemStyle.Render(c.Option.Label)
	if c.IsBest {
		title += " " + tuistyles.TableHighlightStyle.Render("★ largest lifetime total")
	}
	sb.WriteString(title)
	sb.WriteString("\n\n")

	sb.WriteString(NewWonCard("Monthly benefit", c.Option.MonthlyBenefit).WithWonChange(c.Option.MonthlyDiffFromBase).RenderCompact())
	sb.WriteString("\n")
	sb.WriteString(NewWonCard(fmt.Sprintf("Total to age %d", c.LifeAge), c.Option.LifetimeTotal).WithWonChange(c.Option.LifetimeDiffFromBase).RenderCompact())
	sb.WriteString("\n")

	switch {
	case c.IsBase:
		sb.WriteString(tuistyles.SubtitleStyle.Render("Reference option: claim at the normal age"))
	case c.Option.BreakEvenAge > 0 && c.Option.DeferYears > 0:
		sb.WriteString(tuistyles.InfoStyle.Render(fmt.Sprintf("Overtakes the normal claim at age %d", c.Option.BreakEvenAge)))
	case c.Option.BreakEvenAge > 0:
		sb.WriteString(tuistyles.InfoStyle.Render(fmt.Sprintf("Normal claim catches up at age %d", c.Option.BreakEvenAge)))
	default:
		sb.WriteString(tuistyles.SubtitleStyle.Render("No crossover with the normal claim"))
	}

	border := tuistyles.ColorBorder
	if c.Selected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(c.Width).
		Render(sb.String())
}
