package cvpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/dateutil"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/fileutil"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// Serializer writes a profile as a PDF document.
type Serializer interface {
	// Generate renders p in memory and writes it atomically to dest.
	// Sections without data are left out and listed in Result.Omitted.
	Generate(ctx context.Context, p *Profile, dest Destination) (*Result, error)
	// Close releases engine resources.
	Close() error
}

// Compile-time interface checks.
var (
	_ Serializer = (*NativeSerializer)(nil)
	_ Serializer = (*BrowserSerializer)(nil)
)

// New creates the Serializer for engine.
func New(engine Engine, opts ...Option) (Serializer, error) {
	switch engine {
	case EngineNative, "":
		return NewNativeSerializer(opts...)
	case EngineBrowser:
		return NewBrowserSerializer(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, engine)
	}
}

// rendered is a document held in memory before it is written.
type rendered struct {
	data  []byte
	pages int
}

// renderFunc renders a prepared profile to memory.
type renderFunc func(ctx context.Context, v *resume.View) (*rendered, error)

// generate runs the steps shared by both engines: validation, destination
// resolution, preparation, rendering and the atomic write. Internal panics
// are returned as errors.
func generate(ctx context.Context, cfg *serializerConfig, engine Engine, p *Profile, dest Destination, render renderFunc) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if p == nil {
		return nil, ErrNilProfile
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := cfg.resolvePath(p, dest)
	if err != nil {
		return nil, err
	}

	v := resume.Prepare(p, cfg.limits)
	doc, err := render(ctx, v)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, &RenderError{Op: "mkdir", Path: dir, Err: fmt.Errorf("%w: %v", ErrMissingDestination, err)}
	}
	if err := fileutil.WriteFileAtomic(path, doc.data, 0o644); err != nil {
		return nil, &RenderError{Op: "write", Path: path, Err: err}
	}

	return &Result{
		Path:    path,
		Size:    int64(len(doc.data)),
		Pages:   doc.pages,
		Engine:  engine,
		Omitted: v.Omitted,
	}, nil
}

// resolvePath returns the output file path for p.
func (c *serializerConfig) resolvePath(p *Profile, dest Destination) (string, error) {
	dir := dest.Dir
	if dir == "" {
		dir = "."
	}

	name := dest.Filename
	if name == "" {
		var stamp string
		if c.timestampFormat != "" {
			var err error
			if stamp, err = dateutil.FormatTimestamp(c.timestampFormat, c.now()); err != nil {
				return "", err
			}
		}
		return filepath.Join(dir, resume.DefaultFilename(p.Name, stamp)), nil
	}

	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q must not contain a path", ErrInvalidFilename, name)
	}
	switch ext := filepath.Ext(name); {
	case ext == "":
		name += ".pdf"
	case !strings.EqualFold(ext, ".pdf"):
		return "", fmt.Errorf("%w: %q must end in .pdf", ErrInvalidFilename, name)
	}
	return filepath.Join(dir, name), nil
}
