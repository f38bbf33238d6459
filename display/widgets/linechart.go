package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Series is one named line on a chart.
type Series struct {
	Name  string
	Data  []float64
	Color lipgloss.Color
	// Glyph marks the series' points. Zero uses '●'.
	Glyph rune
}

// LineChartConfig describes a percent trend chart.
type LineChartConfig struct {
	Series []Series
	// Labels are the x-axis timestamps, index-aligned with the series data.
	// The first and last visible labels are printed under the axis.
	Labels []string
	// Width is the plot area width in cells (default 60).
	Width int
	// Height is the plot area height in rows (default 10, minimum 3).
	Height int
}

const axisGutter = 5 // "100 ┤"

type chartCell struct {
	glyph rune
	color lipgloss.Color
}

// RenderLineChart plots every series on a shared 0-100 y axis. Points are
// spread evenly across the width; when a series has more points than
// cells, only the most recent Width points are drawn. Where series overlap
// the later one wins. Returns "" when there is nothing to plot.
func RenderLineChart(cfg LineChartConfig) string {
	width := cfg.Width
	if width <= 0 {
		width = 60
	}
	height := cfg.Height
	if height <= 0 {
		height = 10
	}
	if height < 3 {
		height = 3
	}

	n := 0
	for _, s := range cfg.Series {
		n = max(n, len(s.Data))
	}
	if n == 0 {
		return ""
	}
	visible := min(n, width)

	grid := make([][]chartCell, height)
	for r := range grid {
		grid[r] = make([]chartCell, width)
	}

	for _, s := range cfg.Series {
		data := s.Data
		if len(data) > visible {
			data = data[len(data)-visible:]
		}
		glyph := s.Glyph
		if glyph == 0 {
			glyph = '●'
		}
		// Right-align shorter series so the newest points line up.
		offset := visible - len(data)
		for i, v := range data {
			col := column(offset+i, visible, width)
			row := chartRow(v, height)
			grid[row][col] = chartCell{glyph: glyph, color: s.Color}
		}
	}

	var lines []string
	for r, cells := range grid {
		lines = append(lines, axisLabel(r, height)+renderCells(cells))
	}
	lines = append(lines, strings.Repeat(" ", axisGutter-1)+"└"+strings.Repeat("─", width))

	if labels := visibleLabels(cfg.Labels, visible); len(labels) > 0 {
		lines = append(lines, strings.Repeat(" ", axisGutter)+timeAxis(labels, width))
	}
	lines = append(lines, strings.Repeat(" ", axisGutter)+legend(cfg.Series))

	return strings.Join(lines, "\n")
}

// column maps point index i of n to a cell in [0, width).
func column(i, n, width int) int {
	if n <= 1 {
		return width - 1
	}
	return i * (width - 1) / (n - 1)
}

// chartRow maps a percentage to a row, row 0 being 100%.
func chartRow(v float64, height int) int {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(100, v))
	return int(math.Round((1 - v/100) * float64(height-1)))
}

func axisLabel(row, height int) string {
	switch row {
	case 0:
		return "100 ┤"
	case (height - 1) / 2:
		return fmt.Sprintf("%3d ┤", 100-100*row/(height-1))
	case height - 1:
		return "  0 ┤"
	default:
		return "    │"
	}
}

func renderCells(cells []chartCell) string {
	var sb strings.Builder
	for _, c := range cells {
		if c.glyph == 0 {
			sb.WriteByte(' ')
			continue
		}
		g := string(c.glyph)
		if c.color != "" {
			g = lipgloss.NewStyle().Foreground(c.color).Render(g)
		}
		sb.WriteString(g)
	}
	return sb.String()
}

func visibleLabels(labels []string, visible int) []string {
	if len(labels) > visible {
		return labels[len(labels)-visible:]
	}
	return labels
}

// timeAxis prints the first label at the left edge and the last at the
// right edge of the plot, when they fit.
func timeAxis(labels []string, width int) string {
	first, last := labels[0], labels[len(labels)-1]
	if len(labels) == 1 || len(first)+len(last)+1 > width {
		return first
	}
	return first + strings.Repeat(" ", width-len(first)-len(last)) + last
}

func legend(series []Series) string {
	parts := make([]string, 0, len(series))
	for _, s := range series {
		mark := "■"
		if s.Color != "" {
			mark = lipgloss.NewStyle().Foreground(s.Color).Render(mark)
		}
		parts = append(parts, mark+" "+s.Name)
	}
	return strings.Join(parts, "   ")
}
