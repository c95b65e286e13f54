package cvpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/pdfwriter"
)

// showsText reports whether data holds a content stream line printing s.
func showsText(data []byte, s string) bool {
	return bytes.Contains(data, []byte("("+pdfwriter.Escape(s)+") Tj"))
}

func TestNativeSerializer_Generate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := newNative(t)

	res, err := s.Generate(context.Background(), sampleProfile(), Destination{Dir: dir})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Path != filepath.Join(dir, "Jane_Doe_CV.pdf") {
		t.Errorf("Path = %q", res.Path)
	}
	if res.Engine != EngineNative {
		t.Errorf("Engine = %q, want %q", res.Engine, EngineNative)
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
	if len(res.Omitted) != 0 {
		t.Errorf("Omitted = %v, want none", res.Omitted)
	}

	data := readOutput(t, res.Path)
	if int64(len(data)) != res.Size {
		t.Errorf("Size = %d, file has %d bytes", res.Size, len(data))
	}
	assertWellFormed(t, data)

	pages, err := validatePDF(data)
	if err != nil {
		t.Fatalf("validatePDF() error = %v", err)
	}
	if pages != res.Pages {
		t.Errorf("reader counts %d pages, Result says %d", pages, res.Pages)
	}

	for _, want := range []string{
		"Jane Doe",
		"Program Director",
		"PROFESSIONAL SUMMARY",
		"EXPERIENCE",
		"EDUCATION",
		"CERTIFICATIONS",
		"CORE COMPETENCIES",
		"- Opened three clinics",
	} {
		if !showsText(data, want) {
			t.Errorf("document does not show %q", want)
		}
	}
}

func TestNativeSerializer_InfoDictionary(t *testing.T) {
	t.Parallel()

	s := newNative(t, WithProducer("opportunity-engine"))
	data, err := s.Render(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"/Title (Jane Doe - CV)",
		"/Author (Jane Doe)",
		"/Subject (Program Director)",
		"/Creator (cvpdf)",
		"/Producer (opportunity-engine)",
		"/CreationDate (D:20260115103000Z)",
		"/ID [<6f1c2d3e4b5a4c7d8e9f0a1b2c3d4e5f> <6f1c2d3e4b5a4c7d8e9f0a1b2c3d4e5f>]",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestNativeSerializer_Deterministic(t *testing.T) {
	t.Parallel()

	s := newNative(t)
	first, err := s.Render(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := s.Render(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same profile, clock and ID produced different documents")
	}
}

func TestNativeSerializer_ProfileUnchanged(t *testing.T) {
	t.Parallel()

	p := sampleProfile()
	p.Experience[0].Achievements = append(p.Experience[0].Achievements, "Third", "Fourth", "Fifth")
	before := fmt.Sprintf("%#v", *p)

	if _, err := newNative(t).Render(context.Background(), p); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if after := fmt.Sprintf("%#v", *p); after != before {
		t.Errorf("profile modified:\nbefore %s\nafter  %s", before, after)
	}
}

func TestNativeSerializer_Paginates(t *testing.T) {
	t.Parallel()

	p := sampleProfile()
	p.Experience = nil
	for i := range 15 {
		p.Experience = append(p.Experience, Experience{
			Title:   fmt.Sprintf("Role %02d", i),
			Company: "Acme",
			Period:  "2010 - 2012",
			Achievements: []string{
				fmt.Sprintf("Delivered milestone %02d-1", i),
				fmt.Sprintf("Delivered milestone %02d-2", i),
				fmt.Sprintf("Delivered milestone %02d-3", i),
			},
		})
	}

	res, err := newNative(t).Generate(context.Background(), p, Destination{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Pages < 2 {
		t.Fatalf("Pages = %d, want at least 2", res.Pages)
	}

	data := readOutput(t, res.Path)
	assertWellFormed(t, data)

	pages, err := validatePDF(data)
	if err != nil {
		t.Fatalf("validatePDF() error = %v", err)
	}
	if pages != res.Pages {
		t.Errorf("reader counts %d pages, Result says %d", pages, res.Pages)
	}
	if !bytes.Contains(data, []byte(fmt.Sprintf("/Count %d", res.Pages))) {
		t.Errorf("pages tree does not count %d pages", res.Pages)
	}

	// Every line is printed whole, on exactly one page.
	for i := range 15 {
		for j := 1; j <= 3; j++ {
			line := fmt.Sprintf("- Delivered milestone %02d-%d", i, j)
			if n := bytes.Count(data, []byte("("+line+") Tj")); n != 1 {
				t.Errorf("%q printed %d times, want 1", line, n)
			}
		}
	}
}

func TestNativeSerializer_OmitsEmptySections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(p *Profile)
		omitted []Section
		absent  []string
	}{
		{
			name:    "no certifications",
			modify:  func(p *Profile) { p.Certifications = nil },
			omitted: []Section{SectionCertifications},
			absent:  []string{"CERTIFICATIONS"},
		},
		{
			name:    "blank certifications count as none",
			modify:  func(p *Profile) { p.Certifications = []string{"", "   "} },
			omitted: []Section{SectionCertifications},
			absent:  []string{"CERTIFICATIONS"},
		},
		{
			name: "name only",
			modify: func(p *Profile) {
				*p = Profile{Name: p.Name}
			},
			omitted: []Section{SectionSummary, SectionExperience, SectionEducation, SectionCertifications, SectionSkills},
			absent:  []string{"PROFESSIONAL SUMMARY", "EXPERIENCE", "EDUCATION", "CERTIFICATIONS", "CORE COMPETENCIES"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := sampleProfile()
			tt.modify(p)

			res, err := newNative(t).Generate(context.Background(), p, Destination{Dir: t.TempDir()})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if !slices.Equal(res.Omitted, tt.omitted) {
				t.Errorf("Omitted = %v, want %v", res.Omitted, tt.omitted)
			}

			data := readOutput(t, res.Path)
			assertWellFormed(t, data)
			for _, header := range tt.absent {
				if showsText(data, header) {
					t.Errorf("document shows header %q of an omitted section", header)
				}
			}
			if !showsText(data, "Jane Doe") {
				t.Error("document does not show the name")
			}
		})
	}
}

func TestNativeSerializer_Limits(t *testing.T) {
	t.Parallel()

	p := sampleProfile()
	p.Experience[0].Achievements = nil
	for i := 1; i <= 10; i++ {
		p.Experience[0].Achievements = append(p.Experience[0].Achievements, fmt.Sprintf("Achievement number %d", i))
	}

	t.Run("default cap of three", func(t *testing.T) {
		t.Parallel()

		data, err := newNative(t).Render(context.Background(), p)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for i := 1; i <= 10; i++ {
			shown := showsText(data, fmt.Sprintf("- Achievement number %d", i))
			if shown != (i <= 3) {
				t.Errorf("achievement %d shown = %v", i, shown)
			}
		}
		if bytes.Contains(data, []byte(`more\)`)) {
			t.Error("overflow marker written without being enabled")
		}
	})

	t.Run("overflow marker", func(t *testing.T) {
		t.Parallel()

		data, err := newNative(t, WithLimits(Limits{Achievements: 2, OverflowMarker: true})).Render(context.Background(), p)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !showsText(data, "(+8 more)") {
			t.Error("document does not show the overflow marker")
		}
	})

	t.Run("uncapped", func(t *testing.T) {
		t.Parallel()

		data, err := newNative(t, WithLimits(Limits{Achievements: -1})).Render(context.Background(), p)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !showsText(data, "- Achievement number 10") {
			t.Error("last achievement missing without a cap")
		}
	})
}

func TestNativeSerializer_EscapesReservedCharacters(t *testing.T) {
	t.Parallel()

	p := sampleProfile()
	p.Headline = `Director (Acting) \ PMO`

	data, err := newNative(t).Render(context.Background(), p)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`(Director \(Acting\) \\ PMO) Tj`)) {
		t.Error("headline not escaped in the content stream")
	}
	assertWellFormed(t, data)
	if _, err := validatePDF(data); err != nil {
		t.Errorf("validatePDF() error = %v", err)
	}
}

func TestNativeSerializer_PageSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size     string
		mediaBox string
	}{
		{PageSizeA4, "/MediaBox [0 0 595 842]"},
		{PageSizeLetter, "/MediaBox [0 0 612 792]"},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			t.Parallel()

			s := newNative(t, WithPage(PageSettings{Size: tt.size, Margin: 0.5}))
			data, err := s.Render(context.Background(), sampleProfile())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.Contains(data, []byte(tt.mediaBox)) {
				t.Errorf("document missing %q", tt.mediaBox)
			}
		})
	}
}

func TestNativeSerializer_DistinctFilenames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := newNative(t)
	p := sampleProfile()

	var paths []string
	for _, name := range []string{"first.pdf", "second.pdf"} {
		res, err := s.Generate(context.Background(), p, Destination{Dir: dir, Filename: name})
		if err != nil {
			t.Fatalf("Generate(%s) error = %v", name, err)
		}
		paths = append(paths, res.Path)
	}
	if paths[0] == paths[1] {
		t.Fatalf("both calls wrote %s", paths[0])
	}

	for _, path := range paths {
		data := readOutput(t, path)
		assertWellFormed(t, data)
		if _, err := validatePDF(data); err != nil {
			t.Errorf("%s: validatePDF() error = %v", path, err)
		}
	}
}

func TestNativeSerializer_DistinctProfilesSameDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := newNative(t)

	a := sampleProfile()
	b := sampleProfile()
	b.Name = "John Roe"

	resA, err := s.Generate(context.Background(), a, Destination{Dir: dir})
	if err != nil {
		t.Fatalf("Generate(a) error = %v", err)
	}
	resB, err := s.Generate(context.Background(), b, Destination{Dir: dir})
	if err != nil {
		t.Fatalf("Generate(b) error = %v", err)
	}
	if resA.Path == resB.Path {
		t.Fatalf("both profiles written to %s", resA.Path)
	}

	for _, res := range []*Result{resA, resB} {
		data := readOutput(t, res.Path)
		assertWellFormed(t, data)
		if _, err := validatePDF(data); err != nil {
			t.Errorf("%s: validatePDF() error = %v", res.Path, err)
		}
	}
}

func TestNativeSerializer_Concurrent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := newNative(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := sampleProfile()
			p.Name = fmt.Sprintf("Person %d", i)
			if _, err := s.Generate(context.Background(), p, Destination{Dir: dir}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Generate() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 8 {
		t.Errorf("found %d files, want 8", len(entries))
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), "_CV.pdf") {
			t.Errorf("unexpected file %s", e.Name())
		}
	}
}

func TestNativeSerializer_Render(t *testing.T) {
	t.Parallel()

	s := newNative(t)

	if _, err := s.Render(context.Background(), nil); !errors.Is(err, ErrNilProfile) {
		t.Errorf("Render(nil) error = %v, want ErrNilProfile", err)
	}
	if _, err := s.Render(context.Background(), &Profile{}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Render(empty) error = %v, want ErrEmptyName", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Render(ctx, sampleProfile()); !errors.Is(err, context.Canceled) {
		t.Errorf("Render(cancelled) error = %v, want context.Canceled", err)
	}
}
