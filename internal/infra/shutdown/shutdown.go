package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ExitInterrupted is the exit status used when a second signal forces the
// process down.
const ExitInterrupted = 130

// WithSignals returns a context that is cancelled on the first SIGINT or
// SIGTERM. stop releases the signal handler and cancels the context.
func WithSignals(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return withSignals(parent, os.Exit, syscall.SIGINT, syscall.SIGTERM)
}

func withSignals(parent context.Context, exit func(int), sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, sigs...)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
			return
		}
		select {
		case <-sigCh:
			exit(ExitInterrupted)
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}
