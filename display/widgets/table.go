package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/sysdash/internal/format"
)

// Alignment controls text alignment within a table column.
type Alignment int

const (
	// AlignLeft aligns text to the left (default).
	AlignLeft Alignment = iota
	// AlignRight aligns text to the right. Use it for numbers.
	AlignRight
)

// Column defines a single table column.
type Column struct {
	Title string
	// Width is a fixed width. Zero sizes the column to its widest cell.
	Width int
	Align Alignment
	// Flex marks the column that shrinks first when MaxWidth is exceeded.
	Flex bool
}

// TableConfig holds the configuration for rendering a table.
type TableConfig struct {
	Columns []Column
	Rows    [][]string
	// MaxWidth caps the rendered line width. Zero means unlimited.
	MaxWidth    int
	HeaderStyle lipgloss.Style
	RowStyle    lipgloss.Style
	// Separator between columns (default two spaces).
	Separator string
}

// DefaultTableConfig returns a TableConfig with a bold header.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Separator:   "  ",
		HeaderStyle: lipgloss.NewStyle().Bold(true),
		RowStyle:    lipgloss.NewStyle(),
	}
}

// RenderTable renders a header, a rule and one line per row. Cells longer
// than their column are truncated with an ellipsis.
func RenderTable(cfg TableConfig) string {
	if len(cfg.Columns) == 0 {
		return ""
	}
	sep := cfg.Separator
	if sep == "" {
		sep = "  "
	}
	widths := columnWidths(cfg.Columns, cfg.Rows, cfg.MaxWidth, len([]rune(sep)))

	lines := make([]string, 0, len(cfg.Rows)+2)

	cells := make([]string, len(cfg.Columns))
	for i, col := range cfg.Columns {
		cells[i] = fit(col.Title, widths[i], col.Align)
	}
	lines = append(lines, cfg.HeaderStyle.Render(strings.Join(cells, sep)))

	for i := range cfg.Columns {
		cells[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines, strings.Join(cells, sep))

	for _, row := range cfg.Rows {
		for i, col := range cfg.Columns {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			cells[i] = fit(text, widths[i], col.Align)
		}
		lines = append(lines, cfg.RowStyle.Render(strings.Join(cells, sep)))
	}
	return strings.Join(lines, "\n")
}

// fit pads or truncates s to exactly width cells. Styled cells are
// measured without their escape sequences.
func fit(s string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		return format.TruncateWithEllipsis(s, width)
	}
	pad := strings.Repeat(" ", width-w)
	if align == AlignRight {
		return pad + s
	}
	return s + pad
}

// columnWidths sizes each column to its content, then takes any excess
// over maxWidth out of the flex column, never below its title width.
func columnWidths(cols []Column, rows [][]string, maxWidth, sepWidth int) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		w := len([]rune(col.Title))
		for _, row := range rows {
			if i < len(row) {
				w = max(w, lipgloss.Width(row[i]))
			}
		}
		widths[i] = max(w, 1)
	}

	if maxWidth <= 0 {
		return widths
	}
	total := sepWidth * (len(cols) - 1)
	for _, w := range widths {
		total += w
	}
	over := total - maxWidth
	if over <= 0 {
		return widths
	}
	for i, col := range cols {
		if !col.Flex {
			continue
		}
		floor := max(len([]rune(col.Title)), 1)
		widths[i] = max(widths[i]-over, floor)
		break
	}
	return widths
}
