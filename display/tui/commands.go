package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/sysdash/collectors"
	"gitlab.com/tinyland/lab/sysdash/monitor"
)

// readingMsg carries the result of one sampling pass.
type readingMsg struct {
	reading monitor.Reading
}

// tickMsg fires when a wait ends. token identifies the wait it was armed
// for; a mismatch means the wait was superseded.
type tickMsg struct {
	token uint64
}

// hostInfoMsg carries the static host summary, read once at startup.
type hostInfoMsg struct {
	info collectors.HostInfo
	err  error
}

// sampleCmd runs a sampling pass off the update goroutine.
func sampleCmd(ctx context.Context, s *monitor.Sampler, opts monitor.Options) tea.Cmd {
	return func() tea.Msg {
		return readingMsg{reading: s.Collect(ctx, opts)}
	}
}

// waitCmd arms a wait of d identified by token.
func waitCmd(token uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{token: token}
	})
}

func hostInfoCmd(ctx context.Context, src collectors.Source) tea.Cmd {
	return func() tea.Msg {
		info, err := src.HostInfo(ctx)
		return hostInfoMsg{info: info, err: err}
	}
}
