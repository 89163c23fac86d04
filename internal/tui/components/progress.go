package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// FundingBar shows prepared assets against the required nest egg
type FundingBar struct {
	Prepared decimal.Decimal
	Required decimal.Decimal
	Width    int
	Label    string
}

// NewFundingBar creates a funding bar
func NewFundingBar(prepared, required decimal.Decimal) *FundingBar {
	return &FundingBar{Prepared: prepared, Required: required, Width: 40}
}

// WithLabel sets the caption above the bar
func (f *FundingBar) WithLabel(label string) *FundingBar {
	f.Label = label
	return f
}

// WithWidth sets the bar width
func (f *FundingBar) WithWidth(width int) *FundingBar {
	f.Width = width
	return f
}

// Percentage is prepared / required in percent, capped at 100. A zero
// requirement is fully funded.
func (f *FundingBar) Percentage() float64 {
	if !f.Required.IsPositive() {
		return 100
	}
	pct := f.Prepared.Div(f.Required).Mul(decimal.NewFromInt(100)).InexactFloat64()
	return min(max(pct, 0), 100)
}

// IsFunded reports whether prepared assets cover the requirement
func (f *FundingBar) IsFunded() bool {
	return f.Prepared.GreaterThanOrEqual(f.Required)
}

// Render returns the bar
func (f *FundingBar) Render() string {
	var sb strings.Builder
	if f.Label != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Render(f.Label))
		sb.WriteString("\n")
	}

	pct := f.Percentage()
	filled := min(int(float64(f.Width)*pct/100), f.Width)

	fill := tuistyles.MetricNegativeStyle
	if f.IsFunded() {
		fill = tuistyles.MetricPositiveStyle
	}
	sb.WriteString("[")
	sb.WriteString(fill.Render(strings.Repeat("█", filled)))
	sb.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("░", f.Width-filled)))
	sb.WriteString("] ")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(fmt.Sprintf("%.1f%%", pct)))
	return sb.String()
}

// Spinner is a frame-stepped loading indicator
type Spinner struct {
	Frame   int
	Message string
}

// NewSpinner creates a spinner
func NewSpinner() *Spinner {
	return &Spinner{}
}

// WithMessage sets the text beside the spinner
func (s *Spinner) WithMessage(message string) *Spinner {
	s.Message = message
	return s
}

// Next advances one frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current frame
func (s *Spinner) Render() string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	out := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(frames[s.Frame%len(frames)])
	if s.Message != "" {
		out += " " + s.Message
	}
	return out
}
