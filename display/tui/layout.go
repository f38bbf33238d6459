package tui

import "strings"

// LayoutSize represents a responsive breakpoint for terminal width.
type LayoutSize int

const (
	// LayoutCompact is used for terminals narrower than 80 columns. The
	// sidebar is folded into a single status line.
	LayoutCompact LayoutSize = iota
	// LayoutNormal is used for terminals between 80 and 140 columns.
	LayoutNormal
	// LayoutWide is used for terminals wider than 140 columns.
	LayoutWide
)

// DetectLayout returns the LayoutSize for the given terminal width.
func DetectLayout(width int) LayoutSize {
	switch {
	case width < 80:
		return LayoutCompact
	case width <= 140:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// LayoutConfig holds the dimensions that adapt to the terminal.
type LayoutConfig struct {
	// SidebarWidth is zero when the sidebar is folded.
	SidebarWidth int
	// GaugeWidth is the bar width of the overview gauges.
	GaugeWidth int
	// ChartHeight is the plot height of the history chart.
	ChartHeight int
}

// LayoutForSize returns the LayoutConfig for a size class and width.
func LayoutForSize(size LayoutSize, width int) LayoutConfig {
	switch size {
	case LayoutCompact:
		return LayoutConfig{
			GaugeWidth:  max(10, width-24),
			ChartHeight: 6,
		}
	case LayoutWide:
		return LayoutConfig{
			SidebarWidth: 46,
			GaugeWidth:   50,
			ChartHeight:  14,
		}
	default:
		return LayoutConfig{
			SidebarWidth: 42,
			GaugeWidth:   30,
			ChartHeight:  10,
		}
	}
}

// sectionTitle renders a title with horizontal rules on either side.
// Format: "──── Title ────"
func sectionTitle(title string, width int) string {
	decor := len([]rune(title)) + 2
	if width <= 0 || decor >= width {
		return styleTitle.Render(title)
	}
	left := (width - decor) / 2
	right := width - decor - left
	return strings.Repeat("─", left) + " " + styleTitle.Render(title) + " " + strings.Repeat("─", right)
}
