package pdfwriter

import "bytes"

var (
	streamKeyword    = []byte("\nstream\n")
	endstreamKeyword = []byte("\nendstream")
	filterKey        = []byte("/Filter")
)

// ShownText returns the strings drawn by Tj operators in every unfiltered
// stream of data, unescaped, in document order. Compressed streams are
// skipped, so documents from other producers usually yield nothing.
func ShownText(data []byte) []string {
	var lines []string
	rest := data
	for {
		i := bytes.Index(rest, streamKeyword)
		if i < 0 {
			return lines
		}
		dict := rest[:i]
		if j := bytes.LastIndex(dict, []byte("obj")); j >= 0 {
			dict = dict[j:]
		}
		body := rest[i+len(streamKeyword):]
		end := bytes.Index(body, endstreamKeyword)
		if end < 0 {
			return lines
		}
		if !bytes.Contains(dict, filterKey) {
			lines = append(lines, showOperands(body[:end])...)
		}
		rest = body[end+len(endstreamKeyword):]
	}
}

// showOperands scans a content stream for "(literal) Tj".
func showOperands(content []byte) []string {
	var out []string
	for i := 0; i < len(content); i++ {
		if content[i] != '(' {
			continue
		}
		end, ok := literalEnd(content, i)
		if !ok {
			return out
		}
		raw := content[i+1 : end]
		i = end
		if bytes.HasPrefix(bytes.TrimLeft(content[end+1:], " \t\r\n"), []byte("Tj")) {
			out = append(out, Unescape(string(raw)))
		}
	}
	return out
}

// literalEnd returns the index of the parenthesis closing the literal string
// opened at start, honoring escapes and balanced nesting.
func literalEnd(b []byte, start int) (int, bool) {
	depth := 0
	for i := start; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
