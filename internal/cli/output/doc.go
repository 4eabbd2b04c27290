// Package output renders command results for ultron-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables for entity sets, records and plain tables
//   - json.go, yaml.go: machine-readable output keeping server key order
//   - spinner.go: animation shown while a synchronous task runs
//   - color.go: coloured status lines
package output
