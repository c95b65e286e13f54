package cvpdf

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pdfwriter"
)

var disableConfigDir sync.Once

// readerConfig returns a pdfcpu configuration that never touches the user's
// config directory.
func readerConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// validatePDF parses data with an independent reader and returns its page count.
func validatePDF(data []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), readerConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return ctx.PageCount, nil
}

// Report summarizes a PDF document.
type Report struct {
	Version string // from the header, e.g. "1.4"
	Size    int64
	Pages   int
	// Objects counts in-use cross-reference entries. Zero when the table
	// could not be parsed (cross-reference streams are not supported).
	Objects int
	// XRefVerified is true when every cross-reference offset points at the
	// header of the object it names.
	XRefVerified bool
	XRefError    string
	// Text holds the lines drawn by uncompressed content streams, in order.
	// Documents printed by Chrome compress their streams and report none.
	Text []string
}

// Inspect validates data with pdfcpu and checks every cross-reference offset.
// It fails only when the document cannot be read at all; offset problems are
// reported in the Report.
func Inspect(data []byte) (*Report, error) {
	pages, err := validatePDF(data)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Version: headerVersion(data),
		Size:    int64(len(data)),
		Pages:   pages,
		Text:    pdfwriter.ShownText(data),
	}

	table, err := pdfwriter.VerifyXRef(data)
	if err != nil {
		r.XRefError = err.Error()
		return r, nil
	}
	r.XRefVerified = true
	for _, e := range table.Entries {
		if e.InUse {
			r.Objects++
		}
	}
	return r, nil
}

// InspectFile reads and inspects the PDF at path.
func InspectFile(path string) (*Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	return Inspect(data)
}

// headerVersion returns the version from a "%PDF-x.y" header line.
func headerVersion(data []byte) string {
	const prefix = "%PDF-"
	if !bytes.HasPrefix(data, []byte(prefix)) {
		return ""
	}
	line := data[len(prefix):]
	if i := bytes.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	return string(bytes.TrimSpace(line))
}
