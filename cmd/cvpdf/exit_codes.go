package main

import (
	"errors"
	"os"

	cvpdf "github.com/ahmednasr999/opportunity-engine-sub001"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/config"
)

// Exit codes for the cvpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or profile
	ExitIO      = 3 // File not found, permission denied, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cvpdf.ErrBrowserConnect) ||
		errors.Is(err, cvpdf.ErrPageCreate) ||
		errors.Is(err, cvpdf.ErrPageLoad) ||
		errors.Is(err, cvpdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, cvpdf.ErrMissingDestination) ||
		errors.Is(err, ErrReadProfile) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, cvpdf.ErrEmptyName) ||
		errors.Is(err, cvpdf.ErrInvalidEngine) ||
		errors.Is(err, cvpdf.ErrInvalidFilename) ||
		errors.Is(err, cvpdf.ErrInvalidPageSize) ||
		errors.Is(err, cvpdf.ErrInvalidMargin) ||
		errors.Is(err, cvpdf.ErrStyleNotFound) ||
		errors.Is(err, cvpdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrFilenameWithBatch) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
