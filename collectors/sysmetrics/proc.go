package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/process"
)

// procHandle is the subset of per-process queries the collector needs.
type procHandle interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
	MemoryPercent(ctx context.Context) (float32, error)
	CPUPercent(ctx context.Context) (float64, error)
	Status(ctx context.Context) ([]string, error)
}

// gopsProc adapts a gopsutil process to procHandle.
type gopsProc struct {
	p *process.Process
}

func (g gopsProc) PID() int32 { return g.p.Pid }

func (g gopsProc) Name(ctx context.Context) (string, error) {
	return g.p.NameWithContext(ctx)
}

func (g gopsProc) Username(ctx context.Context) (string, error) {
	return g.p.UsernameWithContext(ctx)
}

func (g gopsProc) MemoryPercent(ctx context.Context) (float32, error) {
	return g.p.MemoryPercentWithContext(ctx)
}

// CPUPercent returns usage since the previous call on the same handle.
// The first call on a handle returns 0.
func (g gopsProc) CPUPercent(ctx context.Context) (float64, error) {
	return g.p.PercentWithContext(ctx, 0)
}

func (g gopsProc) Status(ctx context.Context) ([]string, error) {
	return g.p.StatusWithContext(ctx)
}
