// Package prompt reads values interactively: single lines with defaults,
// passwords without echo and free-form name lists.
package prompt
