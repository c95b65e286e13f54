package cvpdf

import (
	"context"
	"fmt"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/layout"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pdfwriter"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// NativeSerializer assembles documents directly: layout, pagination, object
// graph and cross-reference table. It starts no processes and holds no state
// between calls, so one instance may be shared by concurrent callers.
type NativeSerializer struct {
	cfg serializerConfig
}

// NewNativeSerializer creates a NativeSerializer.
func NewNativeSerializer(opts ...Option) (*NativeSerializer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}
	return &NativeSerializer{cfg: cfg}, nil
}

// Generate renders p and writes it to dest.
func (s *NativeSerializer) Generate(ctx context.Context, p *Profile, dest Destination) (*Result, error) {
	return generate(ctx, &s.cfg, EngineNative, p, dest, s.render)
}

// Render returns the document for p without writing it.
func (s *NativeSerializer) Render(ctx context.Context, p *Profile) ([]byte, error) {
	if p == nil {
		return nil, ErrNilProfile
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	doc, err := s.render(ctx, resume.Prepare(p, s.cfg.limits))
	if err != nil {
		return nil, err
	}
	return doc.data, nil
}

func (s *NativeSerializer) render(ctx context.Context, v *resume.View) (*rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	geom := s.cfg.page.geometry()
	m, err := layout.NewMeasurer()
	if err != nil {
		return nil, err
	}

	instrs, err := layout.Build(v, layout.Options{
		Width:    geom.ContentWidth(),
		Font:     pdfwriter.DefaultFont,
		Measurer: m,
	})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	pages, err := pdfwriter.Paginate(instrs, geom)
	if err != nil {
		return nil, fmt.Errorf("pagination: %w", err)
	}

	g, err := pdfwriter.BuildGraph(pages, pdfwriter.GraphOptions{
		Geometry: geom,
		Info: &pdfwriter.Info{
			Title:    v.Name + " - CV",
			Author:   v.Name,
			Subject:  v.Headline,
			Creator:  DefaultProducer,
			Producer: s.cfg.producer,
			Created:  s.cfg.now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("object graph: %w", err)
	}

	id := s.cfg.newID()
	data, err := pdfwriter.Serialize(g.Records, pdfwriter.Trailer{
		Root:   g.Root,
		Info:   g.Info,
		FileID: [2][]byte{id[:], id[:]},
	})
	if err != nil {
		return nil, fmt.Errorf("serialization: %w", err)
	}
	return &rendered{data: data, pages: len(pages)}, nil
}

// Close is a no-op; the native engine holds no resources.
func (s *NativeSerializer) Close() error {
	return nil
}
