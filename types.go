package cvpdf

import (
	"fmt"
	"strings"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pdfwriter"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// Profile types, shared with the internal packages that render them.
type (
	Profile    = resume.Profile
	Experience = resume.Experience
	Education  = resume.Education
	Limits     = resume.Limits
	Section    = resume.Section
)

// Sections that can be omitted, in display order.
const (
	SectionSummary        = resume.SectionSummary
	SectionExperience     = resume.SectionExperience
	SectionEducation      = resume.SectionEducation
	SectionCertifications = resume.SectionCertifications
	SectionSkills         = resume.SectionSkills
)

// LoadProfile reads a profile from a YAML or JSON file and checks it has a name.
func LoadProfile(path string) (*Profile, error) {
	return resume.Load(path)
}

// Engine selects how documents are rendered.
type Engine string

// Available engines.
const (
	// EngineNative assembles the document directly, without external processes.
	EngineNative Engine = "native"
	// EngineBrowser renders a styled HTML page with headless Chrome.
	EngineBrowser Engine = "browser"
)

// Engines lists the valid engine names.
func Engines() []Engine {
	return []Engine{EngineNative, EngineBrowser}
}

// ParseEngine parses an engine name (case-insensitive). Empty selects EngineNative.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return EngineNative, nil
	case EngineNative, EngineBrowser:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (must be native or browser)", ErrInvalidEngine, s)
	}
}

// Page sizes.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

const pointsPerInch = 72

// paperSizes maps page sizes to dimensions in points.
var paperSizes = map[string]struct{ width, height float64 }{
	PageSizeA4:     {pdfwriter.A4Width, pdfwriter.A4Height},
	PageSizeLetter: {pdfwriter.LetterWidth, pdfwriter.LetterHeight},
}

// PageSettings configures page dimensions for both engines.
type PageSettings struct {
	Size   string  // "a4" (default) or "letter"
	Margin float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 with 0.75 inch margins.
func DefaultPageSettings() PageSettings {
	return PageSettings{Size: PageSizeA4, Margin: DefaultMargin}
}

// Validate checks that page settings are valid.
// Zero values are accepted and mean the defaults.
func (p PageSettings) Validate() error {
	if _, ok := paperSizes[strings.ToLower(p.Size)]; p.Size != "" && !ok {
		return fmt.Errorf("%w: %q (must be a4 or letter)", ErrInvalidPageSize, p.Size)
	}
	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// withDefaults fills zero fields.
func (p PageSettings) withDefaults() PageSettings {
	p.Size = strings.ToLower(p.Size)
	if p.Size == "" {
		p.Size = PageSizeA4
	}
	if p.Margin == 0 {
		p.Margin = DefaultMargin
	}
	return p
}

// geometry returns the page and text area in points.
func (p PageSettings) geometry() pdfwriter.Geometry {
	p = p.withDefaults()
	size := paperSizes[p.Size]
	return pdfwriter.NewGeometry(size.width, size.height, p.Margin*pointsPerInch)
}

// paperInches returns the page dimensions in inches.
func (p PageSettings) paperInches() (width, height float64) {
	size := paperSizes[p.withDefaults().Size]
	return size.width / pointsPerInch, size.height / pointsPerInch
}

// Destination names where a document is written.
type Destination struct {
	Dir      string // empty means the current directory
	Filename string // empty derives "<Name>_CV.pdf" from the profile
}

// Result describes a written document.
type Result struct {
	Path    string
	Size    int64
	Pages   int // zero when the engine cannot tell
	Engine  Engine
	Omitted []Section // sections left out because they had no data
}
