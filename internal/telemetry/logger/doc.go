// Package logger provides structured logging for ultron-cli on top of
// log/slog.
//
//   - logger.go: handler setup, levels, the default logger
//   - context.go: logger and request ID propagation through contexts
//   - redact.go: masking of passwords and Authorization values
//
// Logs go to stderr so they never interleave with command output.
package logger
