package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateParse  = errors.New("document template parse failed")
	ErrTemplateRender = errors.New("document template rendering failed")
)

// templateFuncs are available to every document template.
var templateFuncs = template.FuncMap{
	"md": EscapeMarkdown,
}

// MarkdownRenderer renders a prepared CV as Markdown.
type MarkdownRenderer interface {
	RenderMarkdown(ctx context.Context, v *resume.View) (string, error)
}

// TemplateRenderer executes a text/template document template against a
// resume.View. Field values must pass through the "md" function to render
// literally.
type TemplateRenderer struct {
	tmpl         *template.Template
	preprocessor MarkdownPreprocessor
}

// NewTemplateRenderer parses a document template.
func NewTemplateRenderer(content string) (*TemplateRenderer, error) {
	tmpl, err := template.New("cv").
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &TemplateRenderer{
		tmpl:         tmpl,
		preprocessor: &CommonMarkPreprocessor{},
	}, nil
}

// RenderMarkdown executes the template and normalizes the resulting Markdown.
func (r *TemplateRenderer) RenderMarkdown(ctx context.Context, v *resume.View) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if v == nil {
		return "", fmt.Errorf("%w: nil view", ErrTemplateRender)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return r.preprocessor.PreprocessMarkdown(ctx, buf.String()), nil
}

// Compile-time interface check.
var _ MarkdownRenderer = (*TemplateRenderer)(nil)
