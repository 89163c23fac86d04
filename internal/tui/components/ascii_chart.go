package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kpgo/internal/tui/tuistyles"
)

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws won-valued series on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

// NewASCIIChart creates a chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 60, Height: 12, ShowLegend: true}
}

// AddSeries adds a line
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the x-axis caption
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	sb.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}
	if c.ShowLegend && len(c.Series) > 1 {
		sb.WriteString("\n\n")
		sb.WriteString(c.renderLegend())
	}
	return sb.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		n = max(n, len(s.Points))
	}
	return n
}

// bounds returns the padded value range across every series
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	const yAxisWidth = 10
	width := max(c.Width-yAxisWidth, 2)
	height := max(c.Height, 2)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for idx, s := range c.Series {
		mark := seriesChar(idx)
		prevX, prevY := -1, -1
		for i, p := range s.Points {
			x := 0
			if len(s.Points) > 1 {
				x = int(float64(i) / float64(len(s.Points)-1) * float64(width-1))
			}
			y := height - 1 - int((p-lo)/(hi-lo)*float64(height-1))
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y, mark)
			}
			if y >= 0 && y < height {
				grid[y][x] = mark
			}
			prevX, prevY = x, y
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var sb strings.Builder
	for i, row := range grid {
		v := hi - float64(i)/float64(height-1)*(hi-lo)
		sb.WriteString(axis.Render(formatChartValue(v)))
		sb.WriteString(" │ ")
		sb.WriteString(string(row))
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", yAxisWidth))
	sb.WriteString(" └")
	sb.WriteString(strings.Repeat("─", width))
	sb.WriteString("\n")

	if len(c.Labels) > 0 {
		sb.WriteString(strings.Repeat(" ", yAxisWidth+3))
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(spreadLabels(c.Labels, width)))
	}
	return sb.String()
}

// spreadLabels places the first, middle and last labels across width
func spreadLabels(labels []string, width int) string {
	line := []rune(strings.Repeat(" ", width))
	place := func(pos int, label string) {
		r := []rune(label)
		start := min(max(pos-len(r)/2, 0), max(width-len(r), 0))
		for i := 0; i < len(r) && start+i < width; i++ {
			line[start+i] = r[i]
		}
	}
	place(0, labels[0])
	if len(labels) > 2 {
		place(width/2, labels[len(labels)/2])
	}
	if len(labels) > 1 {
		place(width-1, labels[len(labels)-1])
	}
	return strings.TrimRight(string(line), " ")
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two grid cells with Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, mark rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = mark
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		items = append(items, lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))+" "+s.Name)
	}
	return tuistyles.SubtitleStyle.Render("Legend: ") + strings.Join(items, " • ")
}

// formatChartValue renders a y-axis value in 억 or 만 won
func formatChartValue(value float64) string {
	switch a := math.Abs(value); {
	case a >= 1e8:
		return fmt.Sprintf("%.1f억", value/1e8)
	case a >= 1e4:
		return fmt.Sprintf("%.0f만", value/1e4)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
