// Package service implements the client-side operations of ultron-cli
// against the remote Ultron API.
//
// This package contains:
//
//   - Resources: list, show, create, update and delete for admins, clients
//     and groups, with duplicate and existence pre-checks
//   - Dispatcher: task target resolution and submission
//   - Stats: task status counts, state/prop histograms and client filters
//   - Props and kwargs parsing, name-set helpers
//
// Services talk to the server only through the API interface, so they can
// be driven by the HTTP client in production and by fakes in tests.
package service
