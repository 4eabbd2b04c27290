// Package domain defines the core domain models for ultron-cli.
//
// Domain models are plain values without IO dependencies:
//
//   - Session: locally persisted connection state
//   - Record, Value, Entities: ordered, dynamically typed server payloads
//   - TaskStatus, TaskResult: per-client task state as reported by the server
//   - Error: typed client errors (config, auth, duplicate, not found,
//     target not found, validation, remote)
package domain
