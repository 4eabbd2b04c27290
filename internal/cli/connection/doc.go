// Package connection provides the transport to the Ultron API and the
// connect/disconnect lifecycle.
//
//   - http.go: basic-auth HTTP client, form-encoded writes and the
//     {"result", "message"} response envelope
//   - manager.go: credential probe on connect, session save and clear
package connection
