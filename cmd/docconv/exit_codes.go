package main

import (
	"errors"
	"os"

	"github.com/alnah/go-docconv"
	"github.com/alnah/go-docconv/internal/config"
)

// Exit codes for the docconv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, format or option
	ExitIO      = 3 // File not found, permission denied, stream failure
	ExitParse   = 4 // Malformed input
	ExitRender  = 5 // Document not expressible in the target format
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine failures carry their own kind.
	switch docconv.KindOf(err) {
	case docconv.KindParse:
		return ExitParse
	case docconv.KindRender:
		return ExitRender
	case docconv.KindIO:
		return ExitIO
	case docconv.KindUnsupportedFormat, docconv.KindUnsupportedOption, docconv.KindLifecycle:
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, ErrUnknownInputFormat) ||
		errors.Is(err, ErrOutputIsInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
