// Package monitor implements the refresh cycle: one sampling pass over a
// collectors.Source, the phase state machine that sequences sampling,
// rendering and waiting, and a timer-driven runner for non-interactive use.
package monitor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/sysdash/collectors"
)

// Options selects what a sampling pass reads.
type Options struct {
	// Processes enables the process listing. It is the most expensive
	// query after the CPU window.
	Processes bool
}

// Reading is the result of one sampling pass.
type Reading struct {
	Sample    collectors.Sample
	Memory    collectors.MemorySnapshot
	Disks     []collectors.DiskPartition
	Processes []collectors.ProcessInfo

	// ProcessesSampled is true when the pass included a process listing,
	// whether or not any process could be read.
	ProcessesSampled bool

	// Took is the wall time spent sampling.
	Took time.Duration
}

// Sampler runs sampling passes against a Source.
type Sampler struct {
	src    collectors.Source
	logger *slog.Logger
	now    func() time.Time
}

// NewSampler returns a Sampler reading from src.
// If logger is nil, a no-op logger is used.
func NewSampler(src collectors.Source, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sampler{src: src, logger: logger, now: time.Now}
}

// Collect performs one sampling pass. It never fails: a query that errors
// contributes zero values and is logged. The aggregate disk percent is the
// mean over readable partitions, 0 when there are none.
func (s *Sampler) Collect(ctx context.Context, opts Options) Reading {
	start := s.now()
	var r Reading

	cpu, err := s.src.SampleCPU(ctx)
	if err != nil {
		s.logger.Warn("monitor: cpu sample failed", "error", err)
	}

	r.Memory, err = s.src.SampleMemory(ctx)
	if err != nil {
		s.logger.Warn("monitor: memory sample failed", "error", err)
	}

	r.Disks, err = s.src.SampleDisks(ctx)
	if err != nil {
		s.logger.Warn("monitor: disk sample failed", "error", err)
	}

	if opts.Processes {
		r.ProcessesSampled = true
		r.Processes, err = s.src.ListProcesses(ctx)
		if err != nil {
			s.logger.Warn("monitor: process listing failed", "error", err)
		}
		collectors.SortByCPU(r.Processes)
	}

	end := s.now()
	r.Sample = collectors.NewSample(end, cpu, r.Memory.Percent, collectors.AverageDiskPercent(r.Disks))
	r.Took = end.Sub(start)

	s.logger.Debug("monitor: sampled",
		"cpu", r.Sample.CPUPercent,
		"memory", r.Sample.MemoryPercent,
		"disk", r.Sample.DiskPercent,
		"partitions", len(r.Disks),
		"processes", len(r.Processes),
		"took", r.Took,
	)
	return r
}
