package layout

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// unitsPerEm is the scale advances are measured at before being scaled to
// the requested size.
const unitsPerEm = 1000

// Ellipsis marks text shortened by Fit.
const Ellipsis = "..."

var (
	regularOnce sync.Once
	regularFont *sfnt.Font
	regularErr  error
)

func loadRegular() (*sfnt.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = sfnt.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

// Measurer computes text widths from Go Regular glyph advances, a close
// metric match for the standard sans-serif face the document uses.
// A Measurer is not safe for concurrent use.
type Measurer struct {
	font  *sfnt.Font
	buf   sfnt.Buffer
	cache map[rune]float64 // advance at unitsPerEm
}

// NewMeasurer returns a Measurer backed by the embedded Go Regular font.
func NewMeasurer() (*Measurer, error) {
	f, err := loadRegular()
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Measurer{font: f, cache: make(map[rune]float64)}, nil
}

// Width returns the advance width of s in points at the given size.
func (m *Measurer) Width(s string, size float64) float64 {
	var w float64
	for _, r := range s {
		w += m.advance(r)
	}
	return w * size / unitsPerEm
}

func (m *Measurer) advance(r rune) float64 {
	if w, ok := m.cache[r]; ok {
		return w
	}
	w := unitsPerEm / 2.0
	if gi, err := m.font.GlyphIndex(&m.buf, r); err == nil && gi != 0 {
		adv, err := m.font.GlyphAdvance(&m.buf, gi, fixed.I(unitsPerEm), font.HintingNone)
		if err == nil {
			w = float64(adv) / 64
		}
	}
	m.cache[r] = w
	return w
}

// Wrap breaks text at spaces into lines no wider than width. A word wider
// than width gets a line of its own, shortened with Fit.
func (m *Measurer) Wrap(text string, width, size float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	space := m.Width(" ", size)
	var (
		lines []string
		line  string
		lineW float64
	)
	for _, w := range words {
		ww := m.Width(w, size)
		if ww > width {
			w = m.Fit(w, width, size)
			ww = m.Width(w, size)
		}
		switch {
		case line == "":
			line, lineW = w, ww
		case lineW+space+ww <= width:
			line += " " + w
			lineW += space + ww
		default:
			lines = append(lines, line)
			line, lineW = w, ww
		}
	}
	return append(lines, line)
}

// Fit returns text unchanged when it fits in width, otherwise the longest
// prefix that fits together with Ellipsis.
func (m *Measurer) Fit(text string, width, size float64) string {
	if m.Width(text, size) <= width {
		return text
	}

	budget := width - m.Width(Ellipsis, size)
	var w float64
	end := len(text)
	for i, r := range text {
		w += m.advance(r) * size / unitsPerEm
		if w > budget {
			end = i
			break
		}
	}
	return strings.TrimRight(text[:end], " ") + Ellipsis
}
