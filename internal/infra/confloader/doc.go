// Package confloader loads configuration with koanf.
//
// Sources, lowest to highest priority:
//
//  1. Defaults set on the target struct by the caller
//  2. A configuration file (YAML by default, any koanf parser via WithParser)
//  3. Environment variables with the ULTRON_ prefix
//  4. Maps loaded by the caller, typically from command-line flags
//
// The CLI preferences file and the session file are both read through
// this package.
package confloader
