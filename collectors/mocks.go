package collectors

import (
	"context"
	"sync"
	"time"
)

// MockSource is a deterministic Source for demos and tests. CPU readings
// walk through a fixed pattern so history charts have visible shape.
// Setting an error field makes the matching query fail.
type MockSource struct {
	Memory     MemorySnapshot
	Disks      []DiskPartition
	Processes  []ProcessInfo
	Host       HostInfo
	CPUPattern []float64

	CPUErr     error
	MemoryErr  error
	DisksErr   error
	ProcessErr error
	HostErr    error

	mu    sync.Mutex
	calls int
}

// NewMockSource returns a MockSource populated with a plausible workstation.
func NewMockSource() *MockSource {
	return &MockSource{
		Memory: MemorySnapshot{TotalGB: 16, UsedGB: 9.6, Percent: 60},
		Disks: []DiskPartition{
			{Device: "/dev/nvme0n1p2", Mountpoint: "/", Fstype: "ext4", TotalGB: 468.3, UsedGB: 187.3, Percent: 40},
			{Device: "/dev/sda1", Mountpoint: "/data", Fstype: "xfs", TotalGB: 931.5, UsedGB: 791.8, Percent: 85},
		},
		Processes: []ProcessInfo{
			{PID: 1, Name: "systemd", User: "root", MemoryPercent: 0.1, CPUPercent: 0},
			{PID: 812, Name: "sshd", User: "root", MemoryPercent: 0.05, CPUPercent: 0.1},
			{PID: 2210, Name: "chrome", User: "dev", MemoryPercent: 6.2, CPUPercent: 14.5},
			{PID: 2244, Name: "Chrome Helper", User: "dev", MemoryPercent: 3.1, CPUPercent: 4.8},
			{PID: 3050, Name: "postgres", User: "postgres", MemoryPercent: 2.4, CPUPercent: 1.2},
			{PID: 4100, Name: "kworker/0:1", MemoryPercent: 0, CPUPercent: 0.3},
		},
		Host: HostInfo{
			OS:            "linux",
			Platform:      "debian",
			Hostname:      "workstation",
			PhysicalCores: 4,
			LogicalCores:  8,
			TotalMemoryGB: 16,
			BootTime:      time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local),
		},
		CPUPattern: []float64{12, 18, 35, 52, 47, 81, 64, 30, 22, 15},
	}
}

// Calls returns how many times SampleCPU has been invoked.
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SampleCPU returns the next value of CPUPattern.
func (m *MockSource) SampleCPU(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if m.CPUErr != nil {
		return 0, m.CPUErr
	}
	if len(m.CPUPattern) == 0 {
		return 0, nil
	}
	return m.CPUPattern[i%len(m.CPUPattern)], nil
}

// SampleMemory returns Memory.
func (m *MockSource) SampleMemory(context.Context) (MemorySnapshot, error) {
	if m.MemoryErr != nil {
		return MemorySnapshot{}, m.MemoryErr
	}
	return m.Memory, nil
}

// SampleDisks returns a copy of Disks.
func (m *MockSource) SampleDisks(context.Context) ([]DiskPartition, error) {
	if m.DisksErr != nil {
		return nil, m.DisksErr
	}
	out := make([]DiskPartition, len(m.Disks))
	copy(out, m.Disks)
	return out, nil
}

// ListProcesses returns a copy of Processes.
func (m *MockSource) ListProcesses(context.Context) ([]ProcessInfo, error) {
	if m.ProcessErr != nil {
		return nil, m.ProcessErr
	}
	out := make([]ProcessInfo, len(m.Processes))
	copy(out, m.Processes)
	return out, nil
}

// HostInfo returns Host.
func (m *MockSource) HostInfo(context.Context) (HostInfo, error) {
	if m.HostErr != nil {
		return HostInfo{}, m.HostErr
	}
	return m.Host, nil
}

// Compile-time interface compliance check.
var _ Source = (*MockSource)(nil)
