package pdfwriter

import "strings"

// Escape prepares text for a literal string token.
// Backslashes are doubled and parentheses are prefixed with a backslash in a
// single pass, so inserted escape characters are never escaped again.
// All other bytes, including non-ASCII, pass through unchanged.
func Escape(text string) string {
	if !strings.ContainsAny(text, `\()`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unescape reverses Escape. Other escape sequences are kept verbatim.
func Unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			switch next := text[i+1]; next {
			case '\\', '(', ')':
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsEscaped reports whether text can be embedded between parentheses as is:
// every parenthesis is escaped and no backslash is left dangling.
func IsEscaped(text string) bool {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if i+1 >= len(text) {
				return false
			}
			i++
		case '(', ')':
			return false
		}
	}
	return true
}
