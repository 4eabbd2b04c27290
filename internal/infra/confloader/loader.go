package confloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "ULTRON_"

type options struct {
	envPrefix string
	file      string
	parser    koanf.Parser
	optional  bool
	overrides map[string]any
}

// Option configures a Loader.
type Option func(*options)

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables environment loading.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithParser sets the file format parser. The default is YAML.
func WithParser(p koanf.Parser) Option {
	return func(o *options) { o.parser = p }
}

// WithOptionalFile makes a missing configuration file a no-op.
func WithOptionalFile() Option {
	return func(o *options) { o.optional = true }
}

// WithOverrides layers values above every other source, typically the
// command-line flags the user set explicitly.
func WithOverrides(values map[string]any) Option {
	return func(o *options) { o.overrides = values }
}

// Loader merges the file, the environment and overrides, in that order.
type Loader struct {
	k    *koanf.Koanf
	opts options
}

// NewLoader creates a loader. Nothing is read until Load.
func NewLoader(opts ...Option) *Loader {
	o := options{envPrefix: DefaultEnvPrefix, parser: yaml.Parser()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{k: koanf.New("."), opts: o}
}

// Load reads every source and, when target is non-nil, unmarshals the
// merged result into it using koanf tags.
func (l *Loader) Load(target any) error {
	for _, step := range []func() error{l.loadFile, l.loadEnv, l.loadOverrides} {
		if err := step(); err != nil {
			return err
		}
	}
	if target == nil {
		return nil
	}
	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func (l *Loader) loadFile() error {
	path := l.opts.file
	if path == "" {
		return nil
	}
	if l.opts.optional {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}
	if err := l.k.Load(file.Provider(path), l.opts.parser); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// loadEnv keeps keys flat: ULTRON_LOG_LEVEL becomes log_level.
func (l *Loader) loadEnv() error {
	prefix := l.opts.envPrefix
	if prefix == "" {
		return nil
	}
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}
	if err := l.k.Load(env.Provider(prefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func (l *Loader) loadOverrides() error {
	if len(l.opts.overrides) == 0 {
		return nil
	}
	if err := l.k.Load(mapProvider(l.opts.overrides), nil); err != nil {
		return fmt.Errorf("load overrides: %w", err)
	}
	return nil
}

// Get returns the raw merged value of key.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

// String returns the merged value of key as a string.
func (l *Loader) String(key string) string {
	return l.k.String(key)
}
