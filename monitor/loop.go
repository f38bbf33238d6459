package monitor

import (
	"fmt"
	"time"
)

const (
	// MinInterval and MaxInterval bound the wait between refresh cycles.
	MinInterval = 1 * time.Second
	MaxInterval = 60 * time.Second

	// DefaultInterval is the wait used when none is configured.
	DefaultInterval = 5 * time.Second
)

// Phase is a step of the refresh cycle.
type Phase int

const (
	// PhaseWaiting is the pause between cycles. A new Loop starts here
	// with no pending wait.
	PhaseWaiting Phase = iota
	// PhaseSampling means a sampling pass is in flight.
	PhaseSampling
	// PhaseRendering means a reading has arrived and is being drawn.
	PhaseRendering
)

// String returns the human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseSampling:
		return "sampling"
	case PhaseRendering:
		return "rendering"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Loop sequences SAMPLING -> RENDERING -> WAITING -> SAMPLING.
//
// Each wait is identified by a token. Any transition out of WAITING bumps
// the token, so a timer armed for an earlier wait is recognised as stale
// and ignored when it fires. Loop is owned by a single goroutine.
type Loop struct {
	phase    Phase
	token    uint64
	interval time.Duration
}

// NewLoop returns a Loop in the waiting phase with the given interval,
// clamped to [MinInterval, MaxInterval].
func NewLoop(interval time.Duration) *Loop {
	return &Loop{interval: ClampInterval(interval)}
}

// ClampInterval rounds d to whole seconds and limits it to
// [MinInterval, MaxInterval]. Zero or negative values yield DefaultInterval.
func ClampInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultInterval
	}
	d = d.Round(time.Second)
	switch {
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	default:
		return d
	}
}

// Phase returns the current phase.
func (l *Loop) Phase() Phase { return l.phase }

// Interval returns the wait between cycles.
func (l *Loop) Interval() time.Duration { return l.interval }

// SetInterval changes the wait between cycles, clamped to the allowed range.
// It returns the effective interval.
func (l *Loop) SetInterval(d time.Duration) time.Duration {
	l.interval = ClampInterval(d)
	return l.interval
}

// Begin enters the sampling phase. It returns false if a pass is already
// in flight. Any pending wait is invalidated.
func (l *Loop) Begin() bool {
	if l.phase == PhaseSampling {
		return false
	}
	l.phase = PhaseSampling
	l.token++
	return true
}

// Sampled moves from sampling to rendering.
func (l *Loop) Sampled() {
	if l.phase == PhaseSampling {
		l.phase = PhaseRendering
	}
}

// Rendered moves to the waiting phase and returns the token identifying
// the new wait.
func (l *Loop) Rendered() uint64 {
	l.phase = PhaseWaiting
	l.token++
	return l.token
}

// Due reports whether a timer armed with token should start the next pass:
// the loop must still be waiting and the token must be current.
func (l *Loop) Due(token uint64) bool {
	return l.phase == PhaseWaiting && token == l.token
}

// RefreshNow cuts the pending wait short and enters the sampling phase.
// It only acts while waiting; it returns false during sampling or rendering.
// The interrupted wait's token becomes stale, so the next wait is a full
// interval measured from the forced pass.
func (l *Loop) RefreshNow() bool {
	if l.phase != PhaseWaiting {
		return false
	}
	return l.Begin()
}

// Rearm replaces the pending wait with a fresh one, for example after the
// interval changed. It returns the new token and true only while waiting.
func (l *Loop) Rearm() (uint64, bool) {
	if l.phase != PhaseWaiting {
		return 0, false
	}
	l.token++
	return l.token, true
}
