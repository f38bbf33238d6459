package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/sysdash/collectors"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestCollect(t *testing.T) {
	src := collectors.NewMockSource()
	src.CPUPattern = []float64{42}

	s := NewSampler(src, nil)
	start := time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local)
	s.now = fixedClock(start, start.Add(600*time.Millisecond))

	r := s.Collect(context.Background(), Options{Processes: true})

	if r.Sample.Timestamp != "14:30:00" {
		t.Errorf("Timestamp = %q, want 14:30:00", r.Sample.Timestamp)
	}
	if r.Sample.CPUPercent != 42 {
		t.Errorf("CPUPercent = %v, want 42", r.Sample.CPUPercent)
	}
	if r.Sample.MemoryPercent != 60 {
		t.Errorf("MemoryPercent = %v, want 60", r.Sample.MemoryPercent)
	}
	// Mock disks are 40% and 85%.
	if r.Sample.DiskPercent != 62.5 {
		t.Errorf("DiskPercent = %v, want 62.5", r.Sample.DiskPercent)
	}
	if r.Took != 600*time.Millisecond {
		t.Errorf("Took = %v, want 600ms", r.Took)
	}
	if !r.ProcessesSampled {
		t.Error("ProcessesSampled = false, want true")
	}
	if len(r.Processes) != len(src.Processes) {
		t.Fatalf("got %d processes, want %d", len(r.Processes), len(src.Processes))
	}
	for i := 1; i < len(r.Processes); i++ {
		if r.Processes[i].CPUPercent > r.Processes[i-1].CPUPercent {
			t.Errorf("processes not sorted by CPU desc at %d: %v > %v",
				i, r.Processes[i].CPUPercent, r.Processes[i-1].CPUPercent)
		}
	}
}

func TestCollectWithoutProcesses(t *testing.T) {
	src := collectors.NewMockSource()
	r := NewSampler(src, nil).Collect(context.Background(), Options{})

	if r.ProcessesSampled {
		t.Error("ProcessesSampled = true, want false")
	}
	if r.Processes != nil {
		t.Errorf("Processes = %v, want nil", r.Processes)
	}
}

func TestCollectDegradesOnErrors(t *testing.T) {
	src := collectors.NewMockSource()
	src.CPUErr = errors.New("cpu")
	src.MemoryErr = errors.New("mem")
	src.DisksErr = errors.New("disk")
	src.ProcessErr = errors.New("proc")

	r := NewSampler(src, nil).Collect(context.Background(), Options{Processes: true})

	if r.Sample.CPUPercent != 0 || r.Sample.MemoryPercent != 0 || r.Sample.DiskPercent != 0 {
		t.Errorf("expected zero sample on failures, got %+v", r.Sample)
	}
	if len(r.Disks) != 0 {
		t.Errorf("Disks = %v, want empty", r.Disks)
	}
	if len(r.Processes) != 0 {
		t.Errorf("Processes = %v, want empty", r.Processes)
	}
	if !r.ProcessesSampled {
		t.Error("a failed listing still counts as sampled")
	}
	if r.Sample.Timestamp == "" {
		t.Error("sample should still be timestamped")
	}
}

func TestCollectNoPartitions(t *testing.T) {
	src := collectors.NewMockSource()
	src.Disks = nil

	r := NewSampler(src, nil).Collect(context.Background(), Options{})
	if r.Sample.DiskPercent != 0 {
		t.Errorf("DiskPercent = %v, want 0 with no partitions", r.Sample.DiskPercent)
	}
}
