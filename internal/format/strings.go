package format

import "fmt"

// TruncateWithEllipsis shortens s to at most maxWidth runes, ending in "…"
// when anything was cut.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxWidth-1]) + "…"
}

// Percent renders a percentage with one decimal, e.g. "42.5%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// GB renders a size in gigabytes with two decimals, e.g. "12.34 GB".
func GB(v float64) string {
	return fmt.Sprintf("%.2f GB", v)
}

// UsedOfTotal renders "used / total GB" with one decimal.
func UsedOfTotal(used, total float64) string {
	return fmt.Sprintf("%.1f / %.1f GB", used, total)
}

// OrDash returns s, or "-" when s is empty.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
