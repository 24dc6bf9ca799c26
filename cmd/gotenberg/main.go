package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	gotenberg "github.com/alnah/go-gotenberg"
)

func main() {
	flags, inputs, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case the runtime defaults apply and the program continues.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	log := newLogger(flags)
	if err := run(context.Background(), flags, inputs, log); err != nil {
		log.Error().Err(err).Msg("gotenberg")
		os.Exit(exitCodeFor(err))
	}
}

// newLogger builds the console logger. Quiet shows errors only, verbose
// adds per-request details.
func newLogger(f *cliFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case f.quiet:
		level = zerolog.ErrorLevel
	case f.verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

// run wires config, client and conversion together.
func run(ctx context.Context, flags *cliFlags, inputs []string, log zerolog.Logger) error {
	cfg := DefaultConfig()
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	warnUnknownEnvVars(os.Stderr)
	applyEnvConfig(loadEnvConfig(), cfg)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeout(cfg)
	if err != nil {
		return err
	}

	opts := []gotenberg.Option{gotenberg.WithLogger(log)}
	if timeout > 0 {
		opts = append(opts, gotenberg.WithTimeout(timeout))
	}
	if cfg.Username != "" || cfg.Password != "" {
		opts = append(opts, gotenberg.WithBasicAuth(cfg.Username, cfg.Password))
	}
	client := gotenberg.New(cfg.Server, opts...)

	if flags.version {
		version, err := client.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil
	}

	return runConvert(ctx, client, flags, cfg, inputs, log)
}
