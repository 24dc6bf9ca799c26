package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-gotenberg/internal/yamlutil"
)

// Sentinel errors for config loading.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config file")
)

// Config is the YAML file format. Every field is optional; flags override
// config values, config values override defaults.
type Config struct {
	Server    string `yaml:"server"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Timeout   string `yaml:"timeout"`
	PaperSize string `yaml:"paper_size"`
	Landscape bool   `yaml:"landscape"`
	Workers   int    `yaml:"workers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: "http://localhost:3000",
	}
}

// LoadConfig reads and parses a YAML config file. Unknown fields are
// rejected to catch typos.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Server == "" {
		cfg.Server = DefaultConfig().Server
	}
	return cfg, nil
}

// mergeFlags applies CLI flags on top of the config. Flags win.
func mergeFlags(f *cliFlags, cfg *Config) {
	if f.server != "" {
		cfg.Server = f.server
	}
	if f.paperSize != "" {
		cfg.PaperSize = f.paperSize
	}
	if f.landscape {
		cfg.Landscape = true
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
}

// resolveTimeout parses the configured timeout, defaulting to zero (library
// default applies).
func resolveTimeout(cfg *Config) (time.Duration, error) {
	if cfg.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid timeout %q", ErrConfigParse, cfg.Timeout)
	}
	return d, nil
}
