// Package buildinfo exposes version information injected at build time
// via ldflags (Version, Commit, BuildTime). The Go version is read from
// the runtime.
package buildinfo
