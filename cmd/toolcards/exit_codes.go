package main

import (
	"errors"
	"os"

	toolcards "github.com/alnah/go-toolcards"
	"github.com/alnah/go-toolcards/internal/config"
	"github.com/alnah/go-toolcards/internal/fetch"
	"github.com/alnah/go-toolcards/internal/logging"
)

// Exit codes for the toolcards CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or templates
	ExitIO      = 3 // Missing or unwritable files, missing images
	ExitBrowser = 4 // Headless browser errors
	ExitNetwork = 5 // Page fetch failed or icon downloads had failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, fetch.ErrBrowserConnect) ||
		errors.Is(err, fetch.ErrPageLoad) {
		return ExitBrowser
	}

	// Network errors (exit 5)
	if errors.Is(err, ErrDownloadFailures) ||
		errors.Is(err, fetch.ErrRequest) ||
		errors.Is(err, fetch.ErrHTTPStatus) {
		return ExitNetwork
	}

	// Usage/config/template errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, toolcards.ErrInvalidConfig) ||
		errors.Is(err, toolcards.ErrInvalidAssetPath) ||
		errors.Is(err, toolcards.ErrTemplateSetNotFound) ||
		errors.Is(err, toolcards.ErrIncompleteTemplateSet) ||
		errors.Is(err, toolcards.ErrTemplateParse) ||
		errors.Is(err, fetch.ErrEmptyURL) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, toolcards.ErrReadInput) ||
		errors.Is(err, toolcards.ErrReadTarget) ||
		errors.Is(err, toolcards.ErrWriteOutput) ||
		errors.Is(err, ErrImagesMissing) {
		return ExitIO
	}

	return ExitGeneral
}
