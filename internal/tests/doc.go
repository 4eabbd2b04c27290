// Package tests holds end-to-end tests that drive the ultron command tree
// against an in-process fake of the fleet API.
package tests
