package monitor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/sysdash/history"
)

// RenderFunc draws one frame from the latest reading and the full history.
type RenderFunc func(r Reading, h *history.Buffer) error

// Runner drives the refresh cycle with a timer for non-interactive output.
// It owns its history buffer: the only writer is the Run goroutine.
type Runner struct {
	sampler *Sampler
	history *history.Buffer
	loop    *Loop
	render  RenderFunc
	opts    Options
	logger  *slog.Logger
	refresh chan struct{}

	// newTimer is overridable for testing.
	newTimer func(d time.Duration) *time.Timer
}

// NewRunner creates a Runner. If logger is nil, a no-op logger is used.
func NewRunner(sampler *Sampler, hist *history.Buffer, loop *Loop, opts Options, render RenderFunc, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		sampler:  sampler,
		history:  hist,
		loop:     loop,
		render:   render,
		opts:     opts,
		logger:   logger,
		refresh:  make(chan struct{}, 1),
		newTimer: time.NewTimer,
	}
}

// Trigger requests an immediate refresh. It never blocks; a request made
// while one is already queued is dropped. Requests only take effect while
// the runner is waiting.
func (r *Runner) Trigger() {
	select {
	case r.refresh <- struct{}{}:
	default:
	}
}

// Run repeats sample -> append -> render -> wait until ctx is cancelled or
// rendering fails. It returns ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	r.loop.Begin()

	for {
		reading := r.sampler.Collect(ctx, r.opts)
		if err := ctx.Err(); err != nil {
			return err
		}
		r.loop.Sampled()

		r.history.Append(reading.Sample)
		if err := r.render(reading, r.history); err != nil {
			return err
		}
		token := r.loop.Rendered()

		if err := r.wait(ctx, token); err != nil {
			return err
		}
	}
}

// wait blocks for the loop interval or until a refresh is triggered, and
// leaves the loop in the sampling phase.
func (r *Runner) wait(ctx context.Context, token uint64) error {
	// Drop requests that arrived while sampling or rendering.
	select {
	case <-r.refresh:
	default:
	}

	timer := r.newTimer(r.loop.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if !r.loop.Due(token) {
				r.logger.Debug("monitor: stale wait token", "token", token)
			}
			r.loop.Begin()
			return nil
		case <-r.refresh:
			if r.loop.RefreshNow() {
				r.logger.Debug("monitor: refresh requested")
				return nil
			}
		}
	}
}
