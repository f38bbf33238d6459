//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// watchRefreshSignal calls trigger on every SIGUSR1 until ctx is done or
// the returned stop function is called.
func watchRefreshSignal(ctx context.Context, trigger func()) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ch:
				trigger()
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
