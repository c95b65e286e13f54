package pipeline

import (
	stdhtml "html"
	"strings"
)

// Document describes the page around the converted Markdown body.
type Document struct {
	Title string
	Lang  string // defaults to "en"
	Style string // CSS placed in <head>; empty emits no <style> element
}

// wrap returns a complete HTML5 page holding body.
func (d Document) wrap(body string) string {
	lang := d.Lang
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.Grow(len(body) + len(d.Style) + 256)
	b.WriteString("<!DOCTYPE html>\n<html lang=\"")
	b.WriteString(stdhtml.EscapeString(lang))
	b.WriteString("\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(stdhtml.EscapeString(d.Title))
	b.WriteString("</title>\n")
	if d.Style != "" {
		b.WriteString("<style>\n")
		b.WriteString(escapeStyle(d.Style))
		b.WriteString("\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// escapeStyle keeps user CSS from closing the <style> element early.
func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
