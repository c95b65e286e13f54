package cvpdf

import (
	"errors"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pdfwriter"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// Sentinel errors for library operations.
var (
	ErrEmptyName          = resume.ErrEmptyName
	ErrNilProfile         = errors.New("profile is nil")
	ErrMissingDestination = errors.New("output directory cannot be created")
	ErrInvalidFilename    = errors.New("invalid output filename")
	ErrInvalidEngine      = errors.New("invalid engine")
	ErrInvalidPDF         = errors.New("document failed validation")

	// ErrOffsetMismatch reports a cross-reference entry that does not point
	// at its object. Generation aborts and nothing is written.
	ErrOffsetMismatch = pdfwriter.ErrOffsetMismatch

	// Browser engine errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// RenderError reports a failure to persist a rendered document.
type RenderError struct {
	Op   string // "mkdir" or "write"
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
