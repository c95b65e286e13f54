package pdfwriter

import "fmt"

// Page sizes in points.
const (
	A4Width      = 595
	A4Height     = 842
	LetterWidth  = 612
	LetterHeight = 792
)

// Geometry describes a single-column page: its media box and the text area.
// Text starts at (Left, Top) and may not go below Bottom.
type Geometry struct {
	Width  float64
	Height float64
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// NewGeometry builds a geometry with the same margin on every side.
func NewGeometry(width, height, margin float64) Geometry {
	return Geometry{
		Width:  width,
		Height: height,
		Left:   margin,
		Right:  width - margin,
		Top:    height - margin,
		Bottom: margin,
	}
}

// ContentWidth returns the usable line width.
func (g Geometry) ContentWidth() float64 {
	return g.Right - g.Left
}

// Validate checks that the text area is non-empty and inside the page.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: page %vx%v", ErrInvalidGeometry, g.Width, g.Height)
	}
	if g.Left < 0 || g.Right > g.Width || g.Left >= g.Right {
		return fmt.Errorf("%w: horizontal bounds %v..%v", ErrInvalidGeometry, g.Left, g.Right)
	}
	if g.Bottom < 0 || g.Top > g.Height || g.Bottom >= g.Top {
		return fmt.Errorf("%w: vertical bounds %v..%v", ErrInvalidGeometry, g.Bottom, g.Top)
	}
	return nil
}

// Page is the layout of one page. ID and ContentID are assigned by BuildGraph.
type Page struct {
	ID           ID
	ContentID    ID
	Instructions []Instruction
	Cursor       float64 // baseline of the last line when the page was closed
}

// Lines returns the number of ShowText instructions on the page.
func (p *Page) Lines() int {
	n := 0
	for _, in := range p.Instructions {
		if in.Op == OpShowText {
			n++
		}
	}
	return n
}

// Paginate distributes instructions over as many pages as needed.
//
// Cursor moves are held until the next ShowText. If applying them would put
// the baseline below g.Bottom, the current page is closed and the line opens
// a new page at g.Top. Each page begins with an absolute move to its first
// baseline and repeats the active font, so every content stream is
// self-contained. A line is never split, and a page always receives at least
// one line even when that line alone does not fit.
func Paginate(instrs []Instruction, g Geometry) ([]Page, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	var (
		pages    []Page
		cur      Page
		y        = g.Top
		xOffset  float64 // cursor x relative to g.Left
		pendX    float64
		pendY    float64
		font     *Instruction
		fontSent bool
		started  bool // cur has a text line
	)

	for _, in := range instrs {
		if err := in.Validate(); err != nil {
			return nil, err
		}

		switch in.Op {
		case OpSetFont:
			f := in
			font = &f
			fontSent = false

		case OpMoveCursor:
			pendX += in.DX
			pendY += in.DY

		case OpShowText:
			if started && y+pendY < g.Bottom {
				cur.Cursor = y
				pages = append(pages, cur)
				cur = Page{}
				y = g.Top
				started = false
				fontSent = false
			}

			if font != nil && !fontSent {
				cur.Instructions = append(cur.Instructions, *font)
				fontSent = true
			}

			if !started {
				// BT resets the text position to the origin.
				cur.Instructions = append(cur.Instructions,
					MoveCursor(g.Left+xOffset+pendX, y+pendY))
			} else if pendX != 0 || pendY != 0 {
				cur.Instructions = append(cur.Instructions, MoveCursor(pendX, pendY))
			}

			xOffset += pendX
			y += pendY
			pendX, pendY = 0, 0
			started = true
			cur.Instructions = append(cur.Instructions, in)
		}
	}

	if started || len(pages) == 0 {
		cur.Cursor = y
		pages = append(pages, cur)
	}
	return pages, nil
}
