package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/sysdash/collectors"
	"gitlab.com/tinyland/lab/sysdash/display/report"
	"gitlab.com/tinyland/lab/sysdash/display/widgets"
	"gitlab.com/tinyland/lab/sysdash/internal/format"
	"gitlab.com/tinyland/lab/sysdash/monitor"
)

// Clickable zone ids.
const (
	zoneRefresh      = "refresh"
	zoneIntervalUp   = "interval-up"
	zoneIntervalDown = "interval-down"
)

func tabZone(t Tab) string { return fmt.Sprintf("tab-%d", int(t)) }

func clickTargets() []string {
	ids := []string{zoneRefresh, zoneIntervalUp, zoneIntervalDown}
	for t := Tab(0); t < tabCount; t++ {
		ids = append(ids, tabZone(t))
	}
	return ids
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := m.vp.View()
	if m.activeTab == TabDetails {
		content = m.renderSearchLine() + "\n" + content
	}
	content = styleContent.Render(content)

	var body string
	if sw := m.layout().SidebarWidth; sw > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(sw), content)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderStatusLine(), content)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
	return m.zones.Scan(view)
}

// renderHeader renders the tab bar with the active tab highlighted.
func (m Model) renderHeader() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		style := styleInactiveTab
		if t == m.activeTab {
			style = styleActiveTab
		}
		label := fmt.Sprintf("%d %s", int(t)+1, tabNames[t])
		tabs = append(tabs, m.zones.Mark(tabZone(t), style.Render(label)))
	}
	return styleHeader.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderFooter() string {
	if m.searching {
		return styleFooter.Render(m.help.View(searchHelp{keys}))
	}
	return styleFooter.Render(m.help.View(keys))
}

// renderSidebar renders the settings and system information column.
func (m Model) renderSidebar(width int) string {
	interval := m.loop.Interval()

	lines := []string{
		styleTitle.Render("Settings"),
		"Refresh Interval",
		fmt.Sprintf("%s  %2ds  %s",
			m.zones.Mark(zoneIntervalDown, styleButton.Render("-")),
			int(interval/time.Second),
			m.zones.Mark(zoneIntervalUp, styleButton.Render("+")),
		),
		fmt.Sprintf("Dashboard will refresh every %s", format.Seconds(interval)),
		"",
		styleTitle.Render("System Information"),
	}
	lines = append(lines, m.hostLines()...)
	lines = append(lines,
		"",
		m.zones.Mark(zoneRefresh, styleButton.Render("Refresh Now")),
		styleMuted.Render(m.statusText()),
	)

	return styleSidebar.Width(width).Height(m.bodyHeight()).Render(strings.Join(lines, "\n"))
}

func (m Model) hostLines() []string {
	h := m.host
	if h.IsEmpty() {
		return []string{styleMuted.Render("Loading...")}
	}
	return []string{
		"OS: " + format.OrDash(h.OS) + " " + h.Platform,
		"Host: " + format.OrDash(h.Hostname),
		fmt.Sprintf("Physical Cores: %d", h.PhysicalCores),
		fmt.Sprintf("Logical Cores: %d", h.LogicalCores),
		"Total Memory: " + format.GB(h.TotalMemoryGB),
		"Boot Time: " + format.BootTime(h.BootTime),
		"Uptime: " + format.Since(h.BootTime, time.Now()),
	}
}

// renderStatusLine replaces the sidebar on narrow terminals.
func (m Model) renderStatusLine() string {
	return styleMuted.Render(fmt.Sprintf(" every %ds  %s  %s",
		int(m.loop.Interval()/time.Second),
		m.zones.Mark(zoneRefresh, "[r] refresh"),
		m.statusText(),
	))
}

func (m Model) statusText() string {
	switch {
	case m.loop.Phase() == monitor.PhaseSampling:
		return "Sampling..."
	case m.hasReading:
		return "Last update: " + m.reading.Sample.Timestamp
	default:
		return ""
	}
}

func (m Model) renderSearchLine() string {
	if m.searching || m.search.Value() != "" {
		return m.search.View()
	}
	return styleMuted.Render("/ to filter processes")
}

// renderTab renders the viewport content of the active tab.
func (m Model) renderTab() string {
	switch m.activeTab {
	case TabHistory:
		return m.renderHistory()
	case TabDetails:
		return m.renderDetails()
	default:
		return m.renderOverview()
	}
}

func (m Model) renderOverview() string {
	if !m.hasReading {
		return "Collecting first sample..."
	}
	width := m.contentWidth()
	gauge := min(m.layout().GaugeWidth, max(10, width-20))
	s := m.reading.Sample

	return strings.Join([]string{
		sectionTitle("Current Usage", width),
		widgets.RenderGauge(widgets.GaugeConfig{Title: "CPU Usage", Percent: s.CPUPercent, Width: gauge}),
		"",
		widgets.RenderGauge(widgets.GaugeConfig{
			Title:   "Memory Usage",
			Percent: s.MemoryPercent,
			Width:   gauge,
			Caption: format.UsedOfTotal(m.reading.Memory.UsedGB, m.reading.Memory.TotalGB),
		}),
		"",
		widgets.RenderGauge(widgets.GaugeConfig{Title: "Average Disk Usage", Percent: s.DiskPercent, Width: gauge}),
		"",
		sectionTitle("Disk Details", width),
		report.DiskTable(m.reading.Disks, width),
	}, "\n")
}

func (m Model) renderHistory() string {
	if m.history.Len() == 0 {
		return "No history yet."
	}
	width := m.contentWidth()
	chart := widgets.RenderLineChart(widgets.LineChartConfig{
		Series: []widgets.Series{
			{Name: "CPU", Data: m.history.CPU(), Color: colorCPU, Glyph: '●'},
			{Name: "Memory", Data: m.history.Memory(), Color: colorMemory, Glyph: '◆'},
			{Name: "Disk", Data: m.history.Disk(), Color: colorDisk, Glyph: '■'},
		},
		Labels: m.history.Timestamps(),
		Width:  max(10, width-6),
		Height: m.layout().ChartHeight,
	})

	return strings.Join([]string{
		sectionTitle("Usage Over Time", width),
		chart,
		"",
		sectionTitle("Raw Data", width),
		report.HistoryTable(m.history.Table()),
	}, "\n")
}

func (m Model) renderDetails() string {
	if !m.reading.ProcessesSampled {
		return "Collecting process list..."
	}
	all := m.reading.Processes
	if len(all) == 0 {
		return report.NoProcessesMessage
	}

	term := m.search.Value()
	procs := collectors.FilterProcesses(all, term)
	if len(procs) == 0 {
		return fmt.Sprintf("No processes match %q.", term)
	}

	shown := len(procs)
	if m.processLimit > 0 {
		shown = min(shown, m.processLimit)
	}
	summary := styleMuted.Render(fmt.Sprintf("Showing %d of %d processes, sorted by CPU", shown, len(all)))
	return summary + "\n" + report.ProcessTable(procs, m.processLimit, m.contentWidth())
}
