package sysmetrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"gitlab.com/tinyland/lab/sysdash/collectors"
)

// errZombie marks a process skipped because it has already exited.
var errZombie = errors.New("zombie process")

// SysMetricsCollector implements collectors.Source for the local host.
// Per-partition and per-process read failures are filtered out of the
// results and logged at debug level; they never fail the whole query.
type SysMetricsCollector struct {
	logger *slog.Logger
	cfg    Config

	exclude map[string]bool

	// procMu guards procCache. gopsutil keeps the previous CPU times on
	// the *process.Process, so handles are reused across listings to get
	// an interval CPU percent instead of a lifetime average.
	procMu    sync.Mutex
	procCache map[int32]*process.Process

	// Overridable OS queries for testing.
	cpuPercent    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	cpuCounts     func(ctx context.Context, logical bool) (int, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	partitions    func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage         func(ctx context.Context, path string) (*disk.UsageStat, error)
	hostInfo      func(ctx context.Context) (*host.InfoStat, error)
	listProcs     func(ctx context.Context) ([]procHandle, error)
}

// NewSysMetricsCollector creates a SysMetricsCollector.
// If logger is nil, a no-op logger is used.
func NewSysMetricsCollector(cfg Config, logger *slog.Logger) *SysMetricsCollector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.CPUWindow <= 0 {
		cfg.CPUWindow = DefaultCPUWindow
	}
	if cfg.ExcludeFstypes == nil {
		cfg.ExcludeFstypes = DefaultExcludeFstypes
	}

	exclude := make(map[string]bool, len(cfg.ExcludeFstypes))
	for _, fs := range cfg.ExcludeFstypes {
		exclude[strings.ToLower(fs)] = true
	}

	c := &SysMetricsCollector{
		logger:        logger,
		cfg:           cfg,
		exclude:       exclude,
		procCache:     make(map[int32]*process.Process),
		cpuPercent:    cpu.PercentWithContext,
		cpuCounts:     cpu.CountsWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		partitions:    disk.PartitionsWithContext,
		usage:         disk.UsageWithContext,
		hostInfo:      host.InfoWithContext,
	}
	c.listProcs = c.cachedProcesses
	return c
}

// SampleCPU blocks for the configured window and returns the average
// system-wide CPU utilisation over it.
func (c *SysMetricsCollector) SampleCPU(ctx context.Context) (float64, error) {
	pcts, err := c.cpuPercent(ctx, c.cfg.CPUWindow, false)
	if err != nil {
		return 0, fmt.Errorf("sysmetrics: cpu percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, errors.New("sysmetrics: cpu percent: no samples")
	}
	return collectors.ClampPercent(pcts[0]), nil
}

// SampleMemory returns virtual memory totals in GB.
func (c *SysMetricsCollector) SampleMemory(ctx context.Context) (collectors.MemorySnapshot, error) {
	vm, err := c.virtualMemory(ctx)
	if err != nil {
		return collectors.MemorySnapshot{}, fmt.Errorf("sysmetrics: virtual memory: %w", err)
	}
	return collectors.MemorySnapshot{
		TotalGB: collectors.ToGB(vm.Total),
		UsedGB:  collectors.ToGB(vm.Used),
		Percent: collectors.ClampPercent(vm.UsedPercent),
	}, nil
}

// SampleDisks enumerates physical partitions and reads usage for each.
// Optical and excluded virtual filesystems are skipped, as is any partition
// whose usage cannot be read (permission denied, device not ready).
func (c *SysMetricsCollector) SampleDisks(ctx context.Context) ([]collectors.DiskPartition, error) {
	parts, err := c.partitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("sysmetrics: list partitions: %w", err)
	}

	var out []collectors.DiskPartition
	for _, p := range parts {
		if c.skipPartition(p) {
			continue
		}
		dp, err := c.readPartition(ctx, p)
		if err != nil {
			c.logger.Debug("sysmetrics: skipping partition",
				"device", p.Device,
				"mountpoint", p.Mountpoint,
				"error", err,
			)
			continue
		}
		out = append(out, dp)
	}
	return out, nil
}

// skipPartition reports whether p is optical media or an excluded fstype.
func (c *SysMetricsCollector) skipPartition(p disk.PartitionStat) bool {
	fstype := strings.ToLower(p.Fstype)
	if isOptical(fstype, p.Opts) {
		return true
	}
	return c.exclude[fstype]
}

// isOptical reports whether a partition is a CD-ROM style device, or has no
// filesystem type at all (an empty drive).
func isOptical(fstype string, opts []string) bool {
	if fstype == "" || opticalFstypes[fstype] {
		return true
	}
	for _, o := range opts {
		if strings.Contains(strings.ToLower(o), "cdrom") {
			return true
		}
	}
	return false
}

// readPartition reads usage for a single partition.
func (c *SysMetricsCollector) readPartition(ctx context.Context, p disk.PartitionStat) (collectors.DiskPartition, error) {
	u, err := c.usage(ctx, p.Mountpoint)
	if err != nil {
		return collectors.DiskPartition{}, err
	}
	if u.Total == 0 {
		return collectors.DiskPartition{}, errors.New("filesystem reports zero size")
	}
	return collectors.DiskPartition{
		Device:     p.Device,
		Mountpoint: p.Mountpoint,
		Fstype:     p.Fstype,
		TotalGB:    collectors.ToGB(u.Total),
		UsedGB:     collectors.ToGB(u.Used),
		Percent:    collectors.ClampPercent(u.UsedPercent),
	}, nil
}

// ListProcesses returns every process that could be inspected. Processes
// that exit mid-read, deny access, or are zombies are left out.
func (c *SysMetricsCollector) ListProcesses(ctx context.Context) ([]collectors.ProcessInfo, error) {
	handles, err := c.listProcs(ctx)
	if err != nil {
		return nil, fmt.Errorf("sysmetrics: list processes: %w", err)
	}

	out := make([]collectors.ProcessInfo, 0, len(handles))
	skipped := 0
	for _, h := range handles {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p, err := readProcess(ctx, h)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, p)
	}

	if skipped > 0 {
		c.logger.Debug("sysmetrics: skipped unreadable processes", "count", skipped)
	}
	return out, nil
}

// readProcess captures one process. A missing username is not an error;
// the User field is simply left empty.
func readProcess(ctx context.Context, h procHandle) (collectors.ProcessInfo, error) {
	if status, err := h.Status(ctx); err == nil {
		for _, s := range status {
			if s == process.Zombie {
				return collectors.ProcessInfo{}, errZombie
			}
		}
	}

	name, err := h.Name(ctx)
	if err != nil {
		return collectors.ProcessInfo{}, err
	}
	memPct, err := h.MemoryPercent(ctx)
	if err != nil {
		return collectors.ProcessInfo{}, err
	}
	cpuPct, err := h.CPUPercent(ctx)
	if err != nil {
		return collectors.ProcessInfo{}, err
	}
	user, err := h.Username(ctx)
	if err != nil {
		user = ""
	}

	return collectors.ProcessInfo{
		PID:           int(h.PID()),
		Name:          name,
		User:          user,
		MemoryPercent: float64(memPct),
		CPUPercent:    cpuPct,
	}, nil
}

// HostInfo returns the static host summary. Fields that cannot be read are
// left zero; the joined error lists what failed.
func (c *SysMetricsCollector) HostInfo(ctx context.Context) (collectors.HostInfo, error) {
	var info collectors.HostInfo
	var errs []error

	if hi, err := c.hostInfo(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host info: %w", err))
	} else {
		info.OS = hi.OS
		info.Platform = hi.Platform
		info.Hostname = hi.Hostname
		if hi.BootTime > 0 {
			info.BootTime = time.Unix(int64(hi.BootTime), 0)
		}
	}

	if n, err := c.cpuCounts(ctx, false); err != nil {
		errs = append(errs, fmt.Errorf("physical cores: %w", err))
	} else {
		info.PhysicalCores = n
	}
	if n, err := c.cpuCounts(ctx, true); err != nil {
		errs = append(errs, fmt.Errorf("logical cores: %w", err))
	} else {
		info.LogicalCores = n
	}

	if vm, err := c.virtualMemory(ctx); err != nil {
		errs = append(errs, fmt.Errorf("total memory: %w", err))
	} else {
		info.TotalMemoryGB = collectors.ToGB(vm.Total)
	}

	if err := errors.Join(errs...); err != nil {
		return info, fmt.Errorf("sysmetrics: %w", err)
	}
	return info, nil
}

// cachedProcesses lists live processes, reusing handles seen on earlier
// calls and dropping handles for pids that are gone.
func (c *SysMetricsCollector) cachedProcesses(ctx context.Context) ([]procHandle, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	c.procMu.Lock()
	defer c.procMu.Unlock()

	live := make(map[int32]*process.Process, len(procs))
	handles := make([]procHandle, 0, len(procs))
	for _, p := range procs {
		if prev, ok := c.procCache[p.Pid]; ok && sameProcess(ctx, prev, p) {
			p = prev
		}
		live[p.Pid] = p
		handles = append(handles, gopsProc{p: p})
	}
	c.procCache = live
	return handles, nil
}

// sameProcess reports whether a cached handle still refers to the process
// now holding its pid, guarding against pid reuse.
func sameProcess(ctx context.Context, cached, fresh *process.Process) bool {
	a, err := cached.CreateTimeWithContext(ctx)
	if err != nil {
		return false
	}
	b, err := fresh.CreateTimeWithContext(ctx)
	if err != nil {
		return false
	}
	return a == b
}

// Compile-time interface compliance check.
var _ collectors.Source = (*SysMetricsCollector)(nil)
