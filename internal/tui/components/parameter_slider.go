package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// OffsetSlider selects a whole-year claim offset between -Min and +Max.
// Negative values claim early and positive values defer.
type OffsetSlider struct {
	Label       string
	Value       int
	Min         int
	Max         int
	Width       int
	Description string
}

// NewOffsetSlider creates a slider centred on zero
func NewOffsetSlider(label string, minOffset, maxOffset int) *OffsetSlider {
	return &OffsetSlider{Label: label, Min: minOffset, Max: maxOffset, Width: 33}
}

// WithDescription sets the caption under the slider
func (s *OffsetSlider) WithDescription(desc string) *OffsetSlider {
	s.Description = desc
	return s
}

// Increment moves one year later
func (s *OffsetSlider) Increment() {
	s.SetValue(s.Value + 1)
}

// Decrement moves one year earlier
func (s *OffsetSlider) Decrement() {
	s.SetValue(s.Value - 1)
}

// SetValue clamps v into range
func (s *OffsetSlider) SetValue(v int) {
	s.Value = min(max(v, s.Min), s.Max)
}

// Position is the thumb position in [0,1]
func (s *OffsetSlider) Position() float64 {
	if s.Max == s.Min {
		return 0
	}
	return float64(s.Value-s.Min) / float64(s.Max-s.Min)
}

// Render returns the slider
func (s *OffsetSlider) Render() string {
	var sb strings.Builder
	sb.WriteString(tuistyles.MetricLabelStyle.Render(s.Label))
	sb.WriteString("  ")
	sb.WriteString(tuistyles.SliderThumbStyle.Render(FormatOffset(s.Value)))
	sb.WriteString("\n")

	thumb := int(s.Position() * float64(s.Width-1))
	sb.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", thumb)))
	sb.WriteString(tuistyles.SliderThumbStyle.Render("●"))
	sb.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", s.Width-1-thumb)))
	sb.WriteString("\n")

	rng := fmt.Sprintf("%s%s%s", FormatOffset(s.Min), strings.Repeat(" ", max(s.Width-len(FormatOffset(s.Min))-len(FormatOffset(s.Max)), 1)), FormatOffset(s.Max))
	sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(rng))

	if s.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(tuistyles.InfoStyle.Render(s.Description))
	}
	return sb.String()
}

// FormatOffset renders an offset as early/normal/defer years
func FormatOffset(v int) string {
	switch {
	case v < 0:
		return fmt.Sprintf("early %dy", -v)
	case v > 0:
		return fmt.Sprintf("defer %dy", v)
	default:
		return "normal"
	}
}
