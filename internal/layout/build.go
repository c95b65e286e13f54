// Package layout turns a prepared profile into layout instructions for the
// native engine: which text goes on which line, in which font size, in a
// fixed section order.
package layout

import (
	"errors"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pdfwriter"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/resume"
)

// ErrInvalidWidth is returned when the text width is not positive.
var ErrInvalidWidth = errors.New("layout: width must be positive")

// Section headers in display order.
const (
	HeaderSummary        = "PROFESSIONAL SUMMARY"
	HeaderExperience     = "EXPERIENCE"
	HeaderEducation      = "EDUCATION"
	HeaderCertifications = "CERTIFICATIONS"
	HeaderSkills         = "CORE COMPETENCIES"
)

// Bullet prefixes achievement lines.
const Bullet = "- "

// achievementIndent is the horizontal offset of achievement lines.
const achievementIndent = 12

// Role is a semantic kind of line. Every line of a role uses the same font
// size and the same distance to the previous line.
type Role struct {
	Size    float64
	Leading float64
}

// Roles used by Build.
var (
	RoleName     = Role{Size: 24, Leading: 24}
	RoleHeadline = Role{Size: 14, Leading: 20}
	RoleContact  = Role{Size: 10, Leading: 15}
	RoleSection  = Role{Size: 12, Leading: 24}
	RoleTitle    = Role{Size: 12, Leading: 18}
	RoleBody     = Role{Size: 10, Leading: 13}
)

// Options configures Build.
type Options struct {
	Width    float64        // usable line width in points
	Font     pdfwriter.Name // font resource, default pdfwriter.DefaultFont
	Measurer *Measurer      // nil creates one
}

type builder struct {
	out   []pdfwriter.Instruction
	font  pdfwriter.Name
	role  Role
	x     float64
	width float64
	m     *Measurer
}

// Build lays out v top to bottom: header block, summary, experience,
// education, certifications and skills. Sections listed in v.Omitted produce
// nothing, not even their header. The result starts at the top-left of the
// text area; Paginate places it on pages.
func Build(v *resume.View, opts Options) ([]pdfwriter.Instruction, error) {
	if opts.Width <= 0 {
		return nil, ErrInvalidWidth
	}
	m := opts.Measurer
	if m == nil {
		var err error
		if m, err = NewMeasurer(); err != nil {
			return nil, err
		}
	}
	font := opts.Font
	if font == "" {
		font = pdfwriter.DefaultFont
	}

	b := &builder{font: font, width: opts.Width, m: m}

	b.fit(RoleName, v.Name, 0)
	if v.Headline != "" {
		b.fit(RoleHeadline, v.Headline, 0)
	}
	if v.Contact != "" {
		b.wrap(RoleContact, v.Contact)
	}

	if v.Has(resume.SectionSummary) {
		b.line(RoleSection, HeaderSummary, 0)
		b.wrap(RoleBody, v.Summary)
	}

	if v.Has(resume.SectionExperience) {
		b.line(RoleSection, HeaderExperience, 0)
		for _, e := range v.Experience {
			b.fit(RoleTitle, e.Heading(), 0)
			if d := e.Detail(); d != "" {
				b.fit(RoleBody, d, 0)
			}
			for _, a := range e.Achievements {
				b.fit(RoleBody, Bullet+a, achievementIndent)
			}
			if more := v.More(e.Hidden); more != "" {
				b.fit(RoleBody, more, achievementIndent)
			}
		}
	}

	if v.Has(resume.SectionEducation) {
		b.line(RoleSection, HeaderEducation, 0)
		for _, edu := range v.Education {
			b.fit(RoleBody, edu, 0)
		}
	}

	if v.Has(resume.SectionCertifications) {
		b.line(RoleSection, HeaderCertifications, 0)
		b.fit(RoleBody, v.CertificationLine(), 0)
	}

	if v.Has(resume.SectionSkills) {
		b.line(RoleSection, HeaderSkills, 0)
		b.wrap(RoleBody, v.SkillLine())
	}

	return b.out, nil
}

// line emits one line of r at the given indent.
func (b *builder) line(r Role, text string, indent float64) {
	if r != b.role {
		b.out = append(b.out, pdfwriter.SetFont(b.font, r.Size))
		b.role = r
	}
	b.out = append(b.out,
		pdfwriter.MoveCursor(indent-b.x, -r.Leading),
		pdfwriter.ShowText(text))
	b.x = indent
}

// fit emits text on a single line, shortened to the available width.
func (b *builder) fit(r Role, text string, indent float64) {
	b.line(r, b.m.Fit(text, b.width-indent, r.Size), indent)
}

// wrap emits text over as many lines as needed.
func (b *builder) wrap(r Role, text string) {
	for _, l := range b.m.Wrap(text, b.width, r.Size) {
		b.line(r, l, 0)
	}
}
