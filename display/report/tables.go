package report

import (
	"fmt"

	"gitlab.com/tinyland/lab/sysdash/collectors"
	"gitlab.com/tinyland/lab/sysdash/display/widgets"
	"gitlab.com/tinyland/lab/sysdash/history"
	"gitlab.com/tinyland/lab/sysdash/internal/format"
)

// NoProcessesMessage is shown in place of an empty process table.
const NoProcessesMessage = "Unable to retrieve process information."

// NoDisksMessage is shown in place of an empty disk table.
const NoDisksMessage = "No readable disk partitions."

// usageBarWidth is the width of the mini gauge in the disk Usage column.
const usageBarWidth = 10

// DiskTable renders the per-partition usage table.
func DiskTable(disks []collectors.DiskPartition, width int) string {
	if len(disks) == 0 {
		return NoDisksMessage
	}
	cfg := widgets.DefaultTableConfig()
	cfg.MaxWidth = width
	cfg.Columns = []widgets.Column{
		{Title: "Device", Flex: true},
		{Title: "Mountpoint"},
		{Title: "Type"},
		{Title: "Total", Align: widgets.AlignRight},
		{Title: "Used", Align: widgets.AlignRight},
		{Title: "Usage", Align: widgets.AlignRight},
	}
	for _, d := range disks {
		cfg.Rows = append(cfg.Rows, []string{
			d.Device,
			d.Mountpoint,
			d.Fstype,
			format.GB(d.TotalGB),
			format.GB(d.UsedGB),
			widgets.RenderMiniGauge(d.Percent, usageBarWidth) + " " + format.Percent(d.Percent),
		})
	}
	return widgets.RenderTable(cfg)
}

// ProcessTable renders up to limit processes in the given order. A limit
// of zero shows every process.
func ProcessTable(procs []collectors.ProcessInfo, limit, width int) string {
	if len(procs) == 0 {
		return NoProcessesMessage
	}
	if limit > 0 && len(procs) > limit {
		procs = procs[:limit]
	}
	cfg := widgets.DefaultTableConfig()
	cfg.MaxWidth = width
	cfg.Columns = []widgets.Column{
		{Title: "PID", Align: widgets.AlignRight},
		{Title: "Name", Flex: true},
		{Title: "User"},
		{Title: "CPU %", Align: widgets.AlignRight},
		{Title: "Memory %", Align: widgets.AlignRight},
	}
	for _, p := range procs {
		cfg.Rows = append(cfg.Rows, []string{
			fmt.Sprint(p.PID),
			p.Name,
			format.OrDash(p.User),
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%.2f", p.MemoryPercent),
		})
	}
	return widgets.RenderTable(cfg)
}

// HistoryTable renders the raw history rows, oldest first.
func HistoryTable(rows []history.Row) string {
	cfg := widgets.DefaultTableConfig()
	cfg.Columns = []widgets.Column{
		{Title: "Time"},
		{Title: "CPU", Align: widgets.AlignRight},
		{Title: "Memory", Align: widgets.AlignRight},
		{Title: "Disk", Align: widgets.AlignRight},
	}
	for _, r := range rows {
		cfg.Rows = append(cfg.Rows, []string{
			r.Timestamp,
			format.Percent(r.CPU),
			format.Percent(r.Memory),
			format.Percent(r.Disk),
		})
	}
	return widgets.RenderTable(cfg)
}
