package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks are the eight block heights, lowest first.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls a one-line trend strip.
type SparklineConfig struct {
	// Data points, oldest first.
	Data []float64
	// Width in cells. Zero uses len(Data); fewer cells than points keeps
	// the most recent points, more cells left-pads with spaces.
	Width int
	// Color of the blocks. Empty leaves them unstyled.
	Color lipgloss.Color
	// Label is printed before the strip.
	Label string
}

// RenderSparkline renders data on a fixed 0-100 scale, so strips for
// different metrics are visually comparable.
func RenderSparkline(cfg SparklineConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}
	data := cfg.Data
	width := cfg.Width
	if width <= 0 {
		width = len(data)
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(data)))
	for _, v := range data {
		sb.WriteRune(sparkBlocks[blockIndex(v)])
	}

	out := sb.String()
	if cfg.Color != "" {
		out = lipgloss.NewStyle().Foreground(cfg.Color).Render(out)
	}
	if cfg.Label != "" {
		out = cfg.Label + " " + out
	}
	return out
}

// blockIndex maps a percentage to a sparkBlocks index.
func blockIndex(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	n := math.Max(0, math.Min(100, v)) / 100
	return int(math.Round(n * float64(len(sparkBlocks)-1)))
}
