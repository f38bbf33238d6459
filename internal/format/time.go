// Package format provides shared size, percentage and time formatting.
package format

import (
	"fmt"
	"time"
)

// BootTimeLayout is how boot timestamps are shown.
const BootTimeLayout = "2006-01-02 15:04:05"

// BootTime renders t with BootTimeLayout, or "unknown" for the zero time.
func BootTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(BootTimeLayout)
}

// Since renders the time elapsed from t to now as an uptime, e.g. "3d 4h".
func Since(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return Duration(now.Sub(t))
}

// Duration renders a time.Duration as a concise human-readable string.
// Returns strings like "1s", "5m 30s", "2h 15m", "3d 4h".
func Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Seconds renders a whole-second interval, e.g. "5 seconds" or "1 second".
func Seconds(d time.Duration) string {
	n := int(d / time.Second)
	if n == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", n)
}
