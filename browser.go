package cvpdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/assets"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/fileutil"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pipeline"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// BrowserSerializer renders a document template to Markdown, converts it to
// styled HTML and prints it with headless Chrome. Chrome is launched on the
// first Generate and released by Close.
//
// A BrowserSerializer is not safe for concurrent use; use SerializerPool to
// render in parallel.
type BrowserSerializer struct {
	cfg           serializerConfig
	css           string
	renderer      pipeline.MarkdownRenderer
	htmlConverter pipeline.HTMLConverter
	pdfConverter  pdfConverter
}

// NewBrowserSerializer loads the stylesheet and document template. Chrome
// itself is not started until the first document is rendered.
func NewBrowserSerializer(opts ...Option) (*BrowserSerializer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}

	store, err := assets.Open(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	defer func() { _ = store.Close() }()

	css, err := resolveStyle(store, cfg.style)
	if err != nil {
		return nil, err
	}

	tmpl, err := store.Template(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	renderer, err := pipeline.NewTemplateRenderer(tmpl)
	if err != nil {
		return nil, err
	}

	s := &BrowserSerializer{
		cfg:           cfg,
		css:           css,
		renderer:      renderer,
		htmlConverter: pipeline.NewGoldmarkConverter(),
		pdfConverter:  cfg.pdfConverter,
	}
	if s.pdfConverter == nil {
		s.pdfConverter = newChromePrinter(cfg.timeout)
	}
	return s, nil
}

// resolveStyle returns CSS for a style name or a path to a .css file.
// Empty selects the default style.
func resolveStyle(store *assets.Store, nameOrPath string) (string, error) {
	if nameOrPath == "" {
		nameOrPath = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(nameOrPath) || strings.HasSuffix(strings.ToLower(nameOrPath), ".css") {
		content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrStyleNotFound, nameOrPath, err)
		}
		return string(content), nil
	}

	css, err := store.Style(nameOrPath)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, nameOrPath)
		}
		return "", fmt.Errorf("loading style %q: %w", nameOrPath, err)
	}
	return css, nil
}

// Generate renders p and writes it to dest.
func (s *BrowserSerializer) Generate(ctx context.Context, p *Profile, dest Destination) (*Result, error) {
	return generate(ctx, &s.cfg, EngineBrowser, p, dest, s.render)
}

// RenderHTML returns the styled HTML page that would be printed, without
// starting Chrome. Useful to debug templates and styles.
func (s *BrowserSerializer) RenderHTML(ctx context.Context, p *Profile) (string, error) {
	if p == nil {
		return "", ErrNilProfile
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return s.renderHTML(ctx, resume.Prepare(p, s.cfg.limits))
}

func (s *BrowserSerializer) renderHTML(ctx context.Context, v *resume.View) (string, error) {
	md, err := s.renderer.RenderMarkdown(ctx, v)
	if err != nil {
		return "", err
	}

	doc := pipeline.Document{Title: v.Name + " - CV", Style: s.css}
	htmlContent, err := s.htmlConverter.ToHTML(ctx, doc, md)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return htmlContent, nil
}

func (s *BrowserSerializer) render(ctx context.Context, v *resume.View) (*rendered, error) {
	htmlContent, err := s.renderHTML(ctx, v)
	if err != nil {
		return nil, err
	}

	data, err := s.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: s.cfg.page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	pages, err := validatePDF(data)
	if err != nil {
		return nil, err
	}
	return &rendered{data: data, pages: pages}, nil
}

// Close releases resources (headless Chrome browser).
func (s *BrowserSerializer) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}
