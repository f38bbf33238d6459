package collectors

import (
	"math"
	"sort"
	"strings"
	"time"
)

// bytesPerGB converts raw byte counts to the GB figures shown on the dashboard.
const bytesPerGB = 1024 * 1024 * 1024

// ToGB converts a byte count to gigabytes (1024^3).
func ToGB(b uint64) float64 {
	return float64(b) / bytesPerGB
}

// ========== Sample ==========

// SampleTimeFormat is the wall-clock layout used for Sample.Timestamp.
const SampleTimeFormat = "15:04:05"

// Sample is one refresh cycle's aggregate reading. It is a value type and is
// never modified after creation.
type Sample struct {
	// Timestamp is the local wall-clock time of the sample, "HH:MM:SS".
	Timestamp string `json:"timestamp"`

	// CPUPercent is system-wide CPU utilisation (0-100).
	CPUPercent float64 `json:"cpu_percent"`

	// MemoryPercent is virtual memory utilisation (0-100).
	MemoryPercent float64 `json:"memory_percent"`

	// DiskPercent is the aggregate disk percent, see AverageDiskPercent.
	DiskPercent float64 `json:"disk_percent"`
}

// NewSample builds a Sample stamped with t, clamping every percentage to 0-100.
func NewSample(t time.Time, cpu, memory, disk float64) Sample {
	return Sample{
		Timestamp:     t.Format(SampleTimeFormat),
		CPUPercent:    ClampPercent(cpu),
		MemoryPercent: ClampPercent(memory),
		DiskPercent:   ClampPercent(disk),
	}
}

// ClampPercent limits v to the closed range 0-100. NaN reads as 0.
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ========== Memory ==========

// MemorySnapshot holds virtual memory totals.
type MemorySnapshot struct {
	TotalGB float64 `json:"total_gb"`
	UsedGB  float64 `json:"used_gb"`
	Percent float64 `json:"percent"`
}

// ========== Disk ==========

// DiskPartition is the usage of one mounted filesystem.
type DiskPartition struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype"`
	TotalGB    float64 `json:"total_gb"`
	UsedGB     float64 `json:"used_gb"`
	Percent    float64 `json:"percent"`
}

// AverageDiskPercent returns the mean usage percent across partitions.
// An empty list yields 0.
func AverageDiskPercent(parts []DiskPartition) float64 {
	if len(parts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range parts {
		sum += p.Percent
	}
	return sum / float64(len(parts))
}

// ========== Processes ==========

// ProcessInfo is a single row of the process table.
type ProcessInfo struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`

	// User is the owning user name. Empty when the owner could not be resolved.
	User string `json:"user,omitempty"`

	MemoryPercent float64 `json:"memory_percent"`
	CPUPercent    float64 `json:"cpu_percent"`
}

// FilterProcesses returns the processes whose Name contains term,
// compared case-insensitively. An empty or blank term returns procs unchanged.
func FilterProcesses(procs []ProcessInfo, term string) []ProcessInfo {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return procs
	}
	var out []ProcessInfo
	for _, p := range procs {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// SortByCPU orders procs by CPU percent, highest first. Ties keep their
// enumeration order.
func SortByCPU(procs []ProcessInfo) {
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].CPUPercent > procs[j].CPUPercent
	})
}

// ========== Host ==========

// HostInfo is the static system summary shown in the sidebar.
type HostInfo struct {
	OS            string    `json:"os"`
	Platform      string    `json:"platform"`
	Hostname      string    `json:"hostname"`
	PhysicalCores int       `json:"physical_cores"`
	LogicalCores  int       `json:"logical_cores"`
	TotalMemoryGB float64   `json:"total_memory_gb"`
	BootTime      time.Time `json:"boot_time"`
}

// IsEmpty reports whether no host fields were populated.
func (h HostInfo) IsEmpty() bool {
	return h.OS == "" && h.LogicalCores == 0 && h.TotalMemoryGB == 0 && h.BootTime.IsZero()
}
