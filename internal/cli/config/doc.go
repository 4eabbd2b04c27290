// Package config loads the ultron CLI preferences.
//
// Preferences live in ~/.ultron/cli.yaml and may be overridden with
// ULTRON_* environment variables, e.g. ULTRON_OUTPUT=json or
// ULTRON_TIMEOUT=30s. Global flags override both.
package config
