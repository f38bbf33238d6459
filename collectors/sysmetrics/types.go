// Package sysmetrics provides the local system metrics source for sysdash.
// It queries CPU, memory, disk partition and process statistics through
// gopsutil and implements collectors.Source.
package sysmetrics

import "time"

// DefaultCPUWindow is the averaging window for a CPU sample. It is the
// dominant latency of one refresh cycle.
const DefaultCPUWindow = 500 * time.Millisecond

// DefaultExcludeFstypes lists virtual filesystem types left out of the disk
// reading. Optical media are always skipped, see isOptical.
var DefaultExcludeFstypes = []string{"squashfs", "tmpfs", "devtmpfs", "overlay"}

// Config controls what the collector samples.
type Config struct {
	// CPUWindow is how long SampleCPU blocks to average utilisation.
	// Zero or negative uses DefaultCPUWindow.
	CPUWindow time.Duration

	// ExcludeFstypes are filesystem types never reported as partitions.
	// A nil slice uses DefaultExcludeFstypes; an empty non-nil slice excludes nothing.
	ExcludeFstypes []string
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	excl := make([]string, len(DefaultExcludeFstypes))
	copy(excl, DefaultExcludeFstypes)
	return Config{
		CPUWindow:      DefaultCPUWindow,
		ExcludeFstypes: excl,
	}
}

// opticalFstypes are filesystem types of CD/DVD/BD media.
var opticalFstypes = map[string]bool{
	"iso9660": true,
	"udf":     true,
	"cdfs":    true,
}
