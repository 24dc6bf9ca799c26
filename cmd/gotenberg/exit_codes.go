package main

import (
	"errors"
	"os"

	gotenberg "github.com/alnah/go-gotenberg"
)

// Exit codes for the gotenberg CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // File not found, permission denied
	ExitRemote  = 4 // Server rejected or failed the conversion
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is/As to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Server-side failures (exit 4)
	var se *gotenberg.ServiceError
	if errors.As(err, &se) {
		return ExitRemote
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/option errors (exit 2)
	if errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrUnsupportedInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, gotenberg.ErrInvalidOptionValue) ||
		errors.Is(err, gotenberg.ErrConflictingOptions) ||
		errors.Is(err, gotenberg.ErrInvalidFilename) {
		return ExitUsage
	}

	return ExitGeneral
}
