package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the dashboard.
const (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorCPU       = lipgloss.Color("#F97316") // Orange
	colorMemory    = lipgloss.Color("#3B82F6") // Blue
	colorDisk      = lipgloss.Color("#A855F7") // Violet
)

// Styles used throughout the TUI.
var (
	styleActiveTab   lipgloss.Style
	styleInactiveTab lipgloss.Style
	styleHeader      lipgloss.Style
	styleFooter      lipgloss.Style
	styleContent     lipgloss.Style
	styleTitle       lipgloss.Style
	styleSidebar     lipgloss.Style
	styleButton      lipgloss.Style
	styleMuted       lipgloss.Style
)

func init() {
	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted)

	styleFooter = lipgloss.NewStyle().
		Foreground(colorMuted)

	styleContent = lipgloss.NewStyle().
		Padding(0, 2)

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSecondary)

	styleSidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(colorMuted).
		Padding(0, 1)

	styleButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Padding(0, 1)

	styleMuted = lipgloss.NewStyle().
		Foreground(colorMuted)
}
