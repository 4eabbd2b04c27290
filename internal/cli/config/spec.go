package config

import (
	"fmt"
	"time"

	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/telemetry/logger"
)

// CLIConfig holds user preferences for the ultron CLI.
type CLIConfig struct {
	// Output is the default output format: table, json or yaml.
	Output string `koanf:"output"`

	// LogLevel is the stderr log level. --verbose forces debug.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Timeout bounds each API request. Zero means none.
	Timeout time.Duration `koanf:"timeout"`

	// HistoryFile is where the interactive shell keeps its history.
	HistoryFile string `koanf:"history_file"`

	// Color enables coloured messages on terminals.
	Color bool `koanf:"color"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Output:    string(output.FormatTable),
		LogLevel:  "warn",
		LogFormat: "text",
		Color:     true,
	}
}

// Validate checks the preference values.
func (c *CLIConfig) Validate() error {
	if _, err := output.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format: unsupported format %q", c.LogFormat)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout: must not be negative")
	}
	return nil
}
