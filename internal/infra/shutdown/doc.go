// Package shutdown ties process termination signals to a context.
//
// The first SIGINT or SIGTERM cancels the context so in-flight API
// requests and the interactive shell unwind normally. A second signal
// exits immediately with ExitInterrupted.
//
// Usage:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
package shutdown
