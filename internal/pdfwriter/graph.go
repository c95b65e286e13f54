package pdfwriter

import (
	"fmt"
	"time"
)

// CatalogID is the identity of the document catalog in every graph.
const CatalogID ID = 1

// DefaultFont is the resource name of the shared font.
const DefaultFont Name = "F1"

// Info holds the optional document information dictionary entries.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Created  time.Time
}

func (i *Info) dict() Dict {
	d := Dict{}
	set := func(key Name, v string) {
		if v != "" {
			d[key] = String(v)
		}
	}
	set("Title", i.Title)
	set("Author", i.Author)
	set("Subject", i.Subject)
	set("Creator", i.Creator)
	set("Producer", i.Producer)
	if !i.Created.IsZero() {
		d["CreationDate"] = String(FormatDate(i.Created))
	}
	return d
}

// FormatDate formats t as a date string (D:YYYYMMDDHHmmSSZ, in UTC).
func FormatDate(t time.Time) string {
	return "D:" + t.UTC().Format("20060102150405") + "Z"
}

// GraphOptions configures BuildGraph.
type GraphOptions struct {
	Geometry Geometry
	BaseFont Name  // standard Type1 font, default Helvetica
	Info     *Info // nil omits the information dictionary
}

// Graph is the complete object graph of a document in identity order.
type Graph struct {
	Records []Record
	Root    ID
	Pages   ID
	Font    ID
	Info    ID // zero when no information dictionary was built
	PageIDs []ID
}

// arena reserves identities before their objects are known.
// Slot i holds the object for ID i; slot 0 stays empty.
type arena struct {
	slots []Object
}

func newArena() *arena {
	return &arena{slots: make([]Object, 1)}
}

func (a *arena) reserve() ID {
	a.slots = append(a.slots, nil)
	return ID(len(a.slots) - 1)
}

func (a *arena) set(id ID, o Object) {
	a.slots[id] = o
}

func (a *arena) records() ([]Record, error) {
	out := make([]Record, 0, len(a.slots)-1)
	for i := 1; i < len(a.slots); i++ {
		if a.slots[i] == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnresolvedObject, i)
		}
		out = append(out, Record{ID: ID(i), Object: a.slots[i]})
	}
	return out, nil
}

// BuildGraph allocates identities and builds every structural object.
//
// Identities are reserved in a fixed order: catalog, pages tree, then a page
// and its content stream for each page, then the shared font and finally the
// information dictionary. Page dictionaries reference the font by an identity
// reserved after them, so they are completed once the font exists. The pages
// in the input slice get their ID and ContentID filled in.
func BuildGraph(pages []Page, opts GraphOptions) (*Graph, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrNoObjects)
	}
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	baseFont := opts.BaseFont
	if baseFont == "" {
		baseFont = "Helvetica"
	}

	a := newArena()
	g := &Graph{}
	g.Root = a.reserve()
	g.Pages = a.reserve()

	for i := range pages {
		pages[i].ID = a.reserve()
		pages[i].ContentID = a.reserve()

		content, err := EncodeContent(pages[i].Instructions)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		a.set(pages[i].ContentID, &Stream{Dict: Dict{}, Data: content})
		g.PageIDs = append(g.PageIDs, pages[i].ID)
	}

	g.Font = a.reserve()
	a.set(g.Font, Dict{
		"Type":     Name("Font"),
		"Subtype":  Name("Type1"),
		"BaseFont": baseFont,
		"Encoding": Name("WinAnsiEncoding"),
	})

	mediaBox := Array{Integer(0), Integer(0), Real(opts.Geometry.Width), Real(opts.Geometry.Height)}
	kids := make(Array, 0, len(pages))
	for _, p := range pages {
		a.set(p.ID, Dict{
			"Type":     Name("Page"),
			"Parent":   Ref(g.Pages),
			"MediaBox": mediaBox,
			"Contents": Ref(p.ContentID),
			"Resources": Dict{
				"Font": Dict{DefaultFont: Ref(g.Font)},
			},
		})
		kids = append(kids, Ref(p.ID))
	}

	a.set(g.Pages, Dict{
		"Type":  Name("Pages"),
		"Kids":  kids,
		"Count": Integer(len(pages)),
	})
	a.set(g.Root, Dict{
		"Type":  Name("Catalog"),
		"Pages": Ref(g.Pages),
	})

	if opts.Info != nil {
		g.Info = a.reserve()
		a.set(g.Info, opts.Info.dict())
	}

	records, err := a.records()
	if err != nil {
		return nil, err
	}
	g.Records = records
	return g, nil
}
