package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from environment variables, for CI setups
// that cannot carry a config file.
type envConfig struct {
	Server   string // GOTENBERG_SERVER: server URL
	Username string // GOTENBERG_USERNAME: basic auth user
	Password string // GOTENBERG_PASSWORD: basic auth password
	Timeout  string // GOTENBERG_TIMEOUT: per-conversion timeout
	Workers  int    // GOTENBERG_WORKERS: parallel conversions
}

// knownEnvVars lists valid GOTENBERG_* environment variables, used to warn
// about typos.
var knownEnvVars = map[string]bool{
	"GOTENBERG_SERVER":   true,
	"GOTENBERG_USERNAME": true,
	"GOTENBERG_PASSWORD": true,
	"GOTENBERG_TIMEOUT":  true,
	"GOTENBERG_WORKERS":  true,
}

// loadEnvConfig reads all recognized GOTENBERG_* variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		Server:   os.Getenv("GOTENBERG_SERVER"),
		Username: os.Getenv("GOTENBERG_USERNAME"),
		Password: os.Getenv("GOTENBERG_PASSWORD"),
		Timeout:  os.Getenv("GOTENBERG_TIMEOUT"),
	}
	if workers := os.Getenv("GOTENBERG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars flags unrecognized GOTENBERG_* variables, catching
// typos like GOTENBERG_SEVER.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "GOTENBERG_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config values the file left empty. Precedence is
// flags > env > config file > defaults; flags are merged afterwards.
func applyEnvConfig(env *envConfig, cfg *Config) {
	if env.Server != "" && cfg.Server == DefaultConfig().Server {
		cfg.Server = env.Server
	}
	if env.Username != "" && cfg.Username == "" {
		cfg.Username = env.Username
	}
	if env.Password != "" && cfg.Password == "" {
		cfg.Password = env.Password
	}
	if env.Timeout != "" && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
