// Package history holds the bounded sliding window of recent samples that
// backs the trend chart and the raw data table.
package history

import "gitlab.com/tinyland/lab/sysdash/collectors"

// MaxHistoryPoints is the default capacity of a Buffer.
const MaxHistoryPoints = 60

// Row is one sample as shown in the raw data table.
type Row struct {
	Timestamp string  `json:"timestamp"`
	CPU       float64 `json:"cpu"`
	Memory    float64 `json:"memory"`
	Disk      float64 `json:"disk"`
}

// Buffer stores recent samples as four parallel sequences. All four always
// have the same length, at most Cap, and index i in each refers to the same
// sample. The oldest sample is evicted first.
//
// A Buffer has a single owner and is not safe for concurrent use.
type Buffer struct {
	capacity   int
	timestamps []string
	cpu        []float64
	memory     []float64
	disk       []float64
}

// New returns an empty Buffer holding up to capacity samples.
// A capacity of zero or less uses MaxHistoryPoints.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = MaxHistoryPoints
	}
	return &Buffer{
		capacity:   capacity,
		timestamps: make([]string, 0, capacity+1),
		cpu:        make([]float64, 0, capacity+1),
		memory:     make([]float64, 0, capacity+1),
		disk:       make([]float64, 0, capacity+1),
	}
}

// Append adds s to the end of the window, evicting the oldest sample when
// the buffer is over capacity.
func (b *Buffer) Append(s collectors.Sample) {
	b.timestamps = append(b.timestamps, s.Timestamp)
	b.cpu = append(b.cpu, s.CPUPercent)
	b.memory = append(b.memory, s.MemoryPercent)
	b.disk = append(b.disk, s.DiskPercent)
	b.enforceCapacity()
}

// enforceCapacity trims all four sequences from the front together.
func (b *Buffer) enforceCapacity() {
	excess := len(b.timestamps) - b.capacity
	if excess <= 0 {
		return
	}
	b.timestamps = dropFront(b.timestamps, excess)
	b.cpu = dropFront(b.cpu, excess)
	b.memory = dropFront(b.memory, excess)
	b.disk = dropFront(b.disk, excess)
}

// dropFront removes the first n elements in place so the backing array
// does not grow without bound.
func dropFront[T any](s []T, n int) []T {
	copy(s, s[n:])
	return s[:len(s)-n]
}

// Len returns the number of samples held.
func (b *Buffer) Len() int {
	return len(b.timestamps)
}

// Cap returns the maximum number of samples held.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Latest returns the most recent sample, or false if the buffer is empty.
func (b *Buffer) Latest() (collectors.Sample, bool) {
	n := len(b.timestamps)
	if n == 0 {
		return collectors.Sample{}, false
	}
	return collectors.Sample{
		Timestamp:     b.timestamps[n-1],
		CPUPercent:    b.cpu[n-1],
		MemoryPercent: b.memory[n-1],
		DiskPercent:   b.disk[n-1],
	}, true
}

// Table zips the four sequences into rows, oldest first. The result is a
// fresh slice; calling Table twice without an Append yields equal output.
func (b *Buffer) Table() []Row {
	rows := make([]Row, len(b.timestamps))
	for i := range b.timestamps {
		rows[i] = Row{
			Timestamp: b.timestamps[i],
			CPU:       b.cpu[i],
			Memory:    b.memory[i],
			Disk:      b.disk[i],
		}
	}
	return rows
}

// Timestamps returns a copy of the timestamp sequence.
func (b *Buffer) Timestamps() []string {
	return clone(b.timestamps)
}

// CPU returns a copy of the CPU percent sequence.
func (b *Buffer) CPU() []float64 {
	return clone(b.cpu)
}

// Memory returns a copy of the memory percent sequence.
func (b *Buffer) Memory() []float64 {
	return clone(b.memory)
}

// Disk returns a copy of the disk percent sequence.
func (b *Buffer) Disk() []float64 {
	return clone(b.disk)
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
