//go:build !unix

package main

import "context"

// watchRefreshSignal is a no-op where SIGUSR1 does not exist.
func watchRefreshSignal(context.Context, func()) (stop func()) {
	return func() {}
}
