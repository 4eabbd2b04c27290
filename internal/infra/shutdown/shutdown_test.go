//go:build unix

package shutdown

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func raise(t *testing.T, sig syscall.Signal) {
	t.Helper()
	if err := syscall.Kill(os.Getpid(), sig); err != nil {
		t.Fatalf("kill: %v", err)
	}
}

func TestWithSignals_CancelOnSignal(t *testing.T) {
	exited := make(chan int, 1)
	ctx, stop := withSignals(context.Background(), func(code int) { exited <- code }, syscall.SIGUSR1)
	defer stop()

	raise(t, syscall.SIGUSR1)

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled after signal")
	}
	select {
	case code := <-exited:
		t.Fatalf("exit(%d) called after a single signal", code)
	default:
	}
}

func TestWithSignals_SecondSignalExits(t *testing.T) {
	exited := make(chan int, 1)
	ctx, stop := withSignals(context.Background(), func(code int) { exited <- code }, syscall.SIGUSR2)
	defer stop()

	raise(t, syscall.SIGUSR2)
	<-ctx.Done()
	raise(t, syscall.SIGUSR2)

	select {
	case code := <-exited:
		if code != ExitInterrupted {
			t.Errorf("exit code = %d, want %d", code, ExitInterrupted)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second signal did not exit")
	}
}

func TestWithSignals_Stop(t *testing.T) {
	ctx, stop := withSignals(context.Background(), func(int) {}, syscall.SIGUSR1)
	stop()
	stop()

	if ctx.Err() == nil {
		t.Error("stop should cancel the context")
	}
}

func TestWithSignals_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := withSignals(parent, func(int) {}, syscall.SIGUSR1)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("parent cancellation not propagated")
	}
}
