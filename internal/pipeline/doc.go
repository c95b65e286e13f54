// Package pipeline turns a prepared CV into a styled HTML document for the
// browser engine.
//
// The stages run in order:
//   - Markdown rendering from a document template (text/template)
//   - Markdown preprocessing (line normalization, blank line compression)
//   - Markdown to HTML conversion via Goldmark, wrapped in a page whose
//     <head> carries the stylesheet
//
// PDF generation is handled separately by the root cvpdf package using
// headless Chrome (go-rod), which owns page size and margins.
package pipeline
