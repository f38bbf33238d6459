package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Usage bands for percentage gauges.
const (
	// WarnPercent is where a gauge turns from green to yellow.
	WarnPercent = 50.0
	// CriticalPercent is where a gauge turns from yellow to red.
	CriticalPercent = 80.0
)

// Band colours.
var (
	BandOK       = lipgloss.Color("#22C55E")
	BandWarn     = lipgloss.Color("#EAB308")
	BandCritical = lipgloss.Color("#EF4444")
)

// GaugeConfig describes a horizontal usage bar.
type GaugeConfig struct {
	// Title is shown on its own line above the bar. Empty omits the line.
	Title string
	// Percent is the value to draw, clamped to 0-100.
	Percent float64
	// Width is the bar width in cells (default 30).
	Width int
	// Caption is optional text appended after the percentage,
	// e.g. "9.6 / 16.0 GB".
	Caption string
}

// BandColor returns the colour band for a usage percentage:
// green below 50, yellow from 50, red from 80.
func BandColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalPercent:
		return BandCritical
	case percent >= WarnPercent:
		return BandWarn
	default:
		return BandOK
	}
}

// RenderGauge renders a usage gauge:
//
//	CPU Usage
//	██████████░░░░░░░░░░  50.0%
func RenderGauge(cfg GaugeConfig) string {
	pct := math.Max(0, math.Min(100, cfg.Percent))
	if math.IsNaN(cfg.Percent) {
		pct = 0
	}

	width := cfg.Width
	if width <= 0 {
		width = 30
	}
	filled := int(math.Round(pct / 100 * float64(width)))

	bar := lipgloss.NewStyle().Foreground(BandColor(pct)).Render(strings.Repeat("█", filled)) +
		strings.Repeat("░", width-filled)

	line := fmt.Sprintf("%s %5.1f%%", bar, pct)
	if cfg.Caption != "" {
		line += "  " + cfg.Caption
	}
	if cfg.Title == "" {
		return line
	}
	return lipgloss.NewStyle().Bold(true).Render(cfg.Title) + "\n" + line
}

// RenderMiniGauge renders a bare bar with no title or text, for table cells.
func RenderMiniGauge(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct := math.Max(0, math.Min(100, percent))
	filled := int(math.Round(pct / 100 * float64(width)))
	return lipgloss.NewStyle().Foreground(BandColor(pct)).Render(strings.Repeat("█", filled)) +
		strings.Repeat("░", width-filled)
}
