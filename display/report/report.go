// Package report renders sysdash readings as plain text frames for
// one-shot and streaming output.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/sysdash/collectors"
	"gitlab.com/tinyland/lab/sysdash/display/widgets"
	"gitlab.com/tinyland/lab/sysdash/history"
	"gitlab.com/tinyland/lab/sysdash/internal/format"
	"gitlab.com/tinyland/lab/sysdash/monitor"
)

// Options controls frame layout.
type Options struct {
	// Width is the frame width. Zero uses DetectWidth.
	Width int
	// ProcessRows caps the process table. Zero lists every process.
	ProcessRows int
	// Host is printed in the frame header when set.
	Host collectors.HostInfo
}

// Renderer writes frames to an io.Writer.
type Renderer struct {
	mu   sync.Mutex
	w    io.Writer
	opts Options
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DetectWidth()
	}
	return &Renderer{w: w, opts: opts}
}

// Render writes one frame. It has the monitor.RenderFunc signature.
func (r *Renderer) Render(reading monitor.Reading, h *history.Buffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, Frame(reading, h, r.opts)+"\n"); err != nil {
		return fmt.Errorf("report: write frame: %w", err)
	}
	return nil
}

var sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Frame renders a reading and the history as text.
func Frame(reading monitor.Reading, h *history.Buffer, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	barWidth := max(10, min(40, width-30))

	var sections []string

	header := fmt.Sprintf("sysdash  %s", reading.Sample.Timestamp)
	if !opts.Host.IsEmpty() {
		header += fmt.Sprintf("  %s (%s)", format.OrDash(opts.Host.Hostname), format.OrDash(opts.Host.Platform))
	}
	if reading.Took > 0 {
		header += fmt.Sprintf("  sampled in %s", reading.Took.Round(time.Millisecond))
	}
	sections = append(sections, header)

	sections = append(sections, strings.Join([]string{
		widgets.RenderGauge(widgets.GaugeConfig{Title: "CPU Usage", Percent: reading.Sample.CPUPercent, Width: barWidth}),
		widgets.RenderGauge(widgets.GaugeConfig{
			Title:   "Memory Usage",
			Percent: reading.Sample.MemoryPercent,
			Width:   barWidth,
			Caption: format.UsedOfTotal(reading.Memory.UsedGB, reading.Memory.TotalGB),
		}),
		widgets.RenderGauge(widgets.GaugeConfig{Title: "Average Disk Usage", Percent: reading.Sample.DiskPercent, Width: barWidth}),
	}, "\n"))

	if h != nil && h.Len() > 1 {
		sparkWidth := max(10, width-10)
		sections = append(sections, sectionStyle.Render("History")+"\n"+strings.Join([]string{
			widgets.RenderSparkline(widgets.SparklineConfig{Label: "CPU    ", Data: h.CPU(), Width: sparkWidth, Color: widgets.BandColor(reading.Sample.CPUPercent)}),
			widgets.RenderSparkline(widgets.SparklineConfig{Label: "Memory ", Data: h.Memory(), Width: sparkWidth, Color: widgets.BandColor(reading.Sample.MemoryPercent)}),
			widgets.RenderSparkline(widgets.SparklineConfig{Label: "Disk   ", Data: h.Disk(), Width: sparkWidth, Color: widgets.BandColor(reading.Sample.DiskPercent)}),
		}, "\n"))
	}

	sections = append(sections, sectionStyle.Render("Disk Details")+"\n"+DiskTable(reading.Disks, width))

	if reading.ProcessesSampled {
		sections = append(sections, sectionStyle.Render("Top Processes")+"\n"+ProcessTable(reading.Processes, opts.ProcessRows, width))
	}

	return strings.Join(sections, "\n\n") + "\n"
}
