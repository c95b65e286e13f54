package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Trailing spaces would turn into hard breaks
	trailingSpaces = regexp.MustCompile(`(?m)[ \t]+$`)

	// Compress multiple blank lines to one
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Characters CommonMark treats as inline markup
	inlineMarkup = regexp.MustCompile("[\\\\`*_\\[\\]<>|~&]")

	// Line starts that open a heading, list or block quote
	blockStart = regexp.MustCompile(`^([#+=-]|\d+[.)])`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = trailingSpaces.ReplaceAllString(content, "")
	content = compressBlankLines(content)
	return strings.TrimLeft(content, "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// EscapeMarkdown makes profile text render literally when inserted into a
// Markdown line. Inline markup characters get a backslash, a leading block
// marker is escaped, and line breaks become spaces.
func EscapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = inlineMarkup.ReplaceAllString(s, `\$0`)
	if m := blockStart.FindStringIndex(s); m != nil {
		// The backslash goes before the marker's last byte: "#", "-", "1." or "2)".
		pos := m[1] - 1
		s = s[:pos] + `\` + s[pos:]
	}
	return s
}
