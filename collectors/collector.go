// Package collectors defines the metric data model for sysdash and the
// Source interface that OS-backed collectors implement.
package collectors

import "context"

// Source is the interface a metric backend must implement. Each method is a
// pure query with no side effects beyond reading the OS.
//
// Collection of individual partitions or processes is best effort: items
// that cannot be read are left out of the result and do not fail the call.
// A returned error means the query as a whole could not run.
type Source interface {
	// SampleCPU returns system-wide CPU utilisation averaged over the
	// source's sampling window. It blocks for that window.
	SampleCPU(ctx context.Context) (float64, error)

	// SampleMemory returns virtual memory totals.
	SampleMemory(ctx context.Context) (MemorySnapshot, error)

	// SampleDisks returns usage for every readable physical partition.
	SampleDisks(ctx context.Context) ([]DiskPartition, error)

	// ListProcesses returns every process that could be inspected.
	ListProcesses(ctx context.Context) ([]ProcessInfo, error)

	// HostInfo returns the static host summary.
	HostInfo(ctx context.Context) (HostInfo, error)
}
