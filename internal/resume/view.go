package resume

import (
	"sort"
	"strconv"
	"strings"
)

// Section names a part of the document that can be left out.
type Section string

// Optional sections in display order.
const (
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
	SectionSkills         Section = "skills"
)

// Default caps.
const (
	DefaultMaxAchievements   = 3
	DefaultMaxCertifications = 8
	DefaultMaxSkills         = 10
)

// maxLabelLength bounds the "Label: " prefix removed from achievements.
const maxLabelLength = 40

// contactOrder lists the channels shown first, in this order. Other channels
// follow sorted by key.
var contactOrder = []string{"email", "phone", "linkedin", "website", "github"}

// Limits caps the number of items shown per list. Zero means the default;
// a negative value removes the cap.
type Limits struct {
	Achievements   int  `yaml:"achievements"`
	Certifications int  `yaml:"certifications"`
	Skills         int  `yaml:"skills"`
	OverflowMarker bool `yaml:"overflowMarker"`
}

// DefaultLimits returns the caps used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		Achievements:   DefaultMaxAchievements,
		Certifications: DefaultMaxCertifications,
		Skills:         DefaultMaxSkills,
	}
}

func (l Limits) withDefaults() Limits {
	if l.Achievements == 0 {
		l.Achievements = DefaultMaxAchievements
	}
	if l.Certifications == 0 {
		l.Certifications = DefaultMaxCertifications
	}
	if l.Skills == 0 {
		l.Skills = DefaultMaxSkills
	}
	return l
}

// Entry is a prepared experience entry.
type Entry struct {
	Title        string
	Company      string
	Period       string
	Location     string
	Achievements []string
	Hidden       int // achievements dropped by the cap
}

// Heading returns "Title | Company", or whichever of the two is set.
func (e Entry) Heading() string {
	return joinNonEmpty(" | ", e.Title, e.Company)
}

// Detail returns "Period | Location", or whichever of the two is set.
func (e Entry) Detail() string {
	return joinNonEmpty(" | ", e.Period, e.Location)
}

// View is a profile prepared for rendering. Every list holds only non-empty,
// trimmed items within the configured caps.
type View struct {
	Name                 string
	Headline             string
	Contact              string
	Summary              string
	Experience           []Entry
	Education            []string
	Certifications       []string
	HiddenCertifications int
	Skills               []string
	HiddenSkills         int
	OverflowMarker       bool
	Omitted              []Section
}

// More returns the overflow marker for n hidden items, or "" when markers
// are disabled or nothing was hidden.
func (v *View) More(n int) string {
	if !v.OverflowMarker || n <= 0 {
		return ""
	}
	return "(+" + strconv.Itoa(n) + " more)"
}

// CertificationLine joins the shown certifications on one line.
func (v *View) CertificationLine() string {
	line := strings.Join(v.Certifications, " | ")
	if more := v.More(v.HiddenCertifications); more != "" {
		line += " " + more
	}
	return line
}

// SkillLine joins the shown skills on one line.
func (v *View) SkillLine() string {
	line := strings.Join(v.Skills, " | ")
	if more := v.More(v.HiddenSkills); more != "" {
		line += " " + more
	}
	return line
}

// Has reports whether section s is shown.
func (v *View) Has(s Section) bool {
	for _, o := range v.Omitted {
		if o == s {
			return false
		}
	}
	return true
}

// Prepare builds the view of p under limits. Absent or empty sections are
// recorded in Omitted instead of failing.
func Prepare(p *Profile, limits Limits) *View {
	limits = limits.withDefaults()

	v := &View{
		Name:           strings.TrimSpace(p.Name),
		Headline:       strings.TrimSpace(p.Headline),
		Contact:        ContactLine(p.Location, p.Contact),
		Summary:        strings.Join(strings.Fields(p.Summary), " "),
		OverflowMarker: limits.OverflowMarker,
	}

	for _, exp := range p.Experience {
		e := Entry{
			Title:    strings.TrimSpace(exp.Title),
			Company:  strings.TrimSpace(exp.Company),
			Period:   strings.TrimSpace(exp.Period),
			Location: strings.TrimSpace(exp.Location),
		}
		if e.Title == "" && e.Company == "" {
			continue
		}
		var achievements []string
		for _, a := range clean(exp.Achievements) {
			achievements = append(achievements, stripLabel(a))
		}
		e.Achievements, e.Hidden = capList(achievements, limits.Achievements)
		v.Experience = append(v.Experience, e)
	}

	for _, edu := range p.Education {
		if line := EducationLine(edu); line != "" {
			v.Education = append(v.Education, line)
		}
	}

	v.Certifications, v.HiddenCertifications = capList(clean(p.Certifications), limits.Certifications)
	v.Skills, v.HiddenSkills = capList(clean(p.Skills), limits.Skills)

	if v.Summary == "" {
		v.Omitted = append(v.Omitted, SectionSummary)
	}
	if len(v.Experience) == 0 {
		v.Omitted = append(v.Omitted, SectionExperience)
	}
	if len(v.Education) == 0 {
		v.Omitted = append(v.Omitted, SectionEducation)
	}
	if len(v.Certifications) == 0 {
		v.Omitted = append(v.Omitted, SectionCertifications)
	}
	if len(v.Skills) == 0 {
		v.Omitted = append(v.Omitted, SectionSkills)
	}
	return v
}

// ContactLine joins the location and contact values with " | ".
func ContactLine(location string, contact map[string]string) string {
	parts := []string{strings.TrimSpace(location)}

	seen := make(map[string]bool, len(contactOrder))
	for _, k := range contactOrder {
		seen[k] = true
		parts = append(parts, strings.TrimSpace(contact[k]))
	}

	rest := make([]string, 0, len(contact))
	for k := range contact {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		parts = append(parts, strings.TrimSpace(contact[k]))
	}

	return joinNonEmpty(" | ", parts...)
}

// EducationLine renders an entry as "Degree - Field | Institution | Year".
func EducationLine(e Education) string {
	degree := strings.TrimSpace(e.Degree)
	if field := strings.TrimSpace(e.Field); field != "" {
		degree = joinNonEmpty(" - ", degree, field)
	}
	return joinNonEmpty(" | ", degree, strings.TrimSpace(e.Institution), strings.TrimSpace(e.Year))
}

// stripLabel turns "Cost: reduced spend by 20%" into "reduced spend by 20%".
func stripLabel(s string) string {
	i := strings.Index(s, ": ")
	if i <= 0 || i > maxLabelLength {
		return s
	}
	if rest := strings.TrimSpace(s[i+2:]); rest != "" {
		return rest
	}
	return s
}

func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func capList(items []string, limit int) ([]string, int) {
	if limit < 0 || len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
