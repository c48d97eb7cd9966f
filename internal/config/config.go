// Package config loads the retext configuration from a TOML or YAML
// file with environment variable overrides, and optionally watches the
// file for live reload.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RETEXT_"

// Default configuration values.
const (
	DefaultInput        = "input.txt"
	DefaultOutput       = "output.txt"
	DefaultContextWidth = 30
	DefaultEndSentinel  = "END"
)

// defaultFiles are probed in order when no config path is given.
var defaultFiles = []string{"retext.toml", "retext.yaml", "retext.yml"}

// Config holds the session settings.
type Config struct {
	// Input is the document read at session start.
	Input string `toml:"input" yaml:"input"`

	// Output receives the final document on exit.
	Output string `toml:"output" yaml:"output"`

	// Journal is the command log file; empty disables journal persistence.
	Journal string `toml:"journal" yaml:"journal"`

	// ContextWidth is the preview window around each match, in grapheme
	// clusters per side.
	ContextWidth int `toml:"context_width" yaml:"context_width"`

	// EndSentinel terminates multi-line replacement input.
	EndSentinel string `toml:"end_sentinel" yaml:"end_sentinel"`

	// LiveReload re-reads the config file when it changes on disk.
	LiveReload bool `toml:"live_reload" yaml:"live_reload"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:        DefaultInput,
		Output:       DefaultOutput,
		ContextWidth: DefaultContextWidth,
		EndSentinel:  DefaultEndSentinel,
	}
}

// ParseError reports a config file that could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the configuration. A missing file is not an error: the
// defaults apply, then environment overrides. When path is empty the
// default file names are probed in the working directory.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = probeDefaultFiles()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := unmarshal(path, data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)

	if cfg.ContextWidth <= 0 {
		cfg.ContextWidth = DefaultContextWidth
	}
	if cfg.EndSentinel == "" {
		cfg.EndSentinel = DefaultEndSentinel
	}
	return cfg, nil
}

func probeDefaultFiles() string {
	for _, name := range defaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func unmarshal(path string, data []byte, cfg *Config) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// applyEnv overlays RETEXT_* environment variables. Unparseable
// numeric or boolean values are ignored rather than fatal, matching
// the permissive treatment of optional settings elsewhere.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "INPUT"); ok {
		cfg.Input = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "JOURNAL"); ok {
		cfg.Journal = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CONTEXT_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ContextWidth = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "END_SENTINEL"); ok && v != "" {
		cfg.EndSentinel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LIVE_RELOAD"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LiveReload = b
		}
	}
}
