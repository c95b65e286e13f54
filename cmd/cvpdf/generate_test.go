package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	cvpdf "github.com/ahmednasr999/opportunity-engine-sub001"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/config"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const janeProfile = `name: Jane Doe
headline: Operations Director
location: Dubai, UAE
contact:
  email: jane@example.com
summary: Builds and runs healthcare operations.
experience:
  - title: Director
    company: Acme Health
    period: 2020 - Present
    achievements:
      - Opened three clinics
      - Cut wait times by 40%
skills: [Leadership, Budgeting]
`

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// testEnv returns an Environment with a fixed clock and captured output.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero means auto", 0, false},
		{"one", 1, false},
		{"max", cvpdf.MaxPoolSize, false},
		{"negative", -1, true},
		{"above max", cvpdf.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if tt.wantErr != (err != nil) {
				t.Fatalf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateProfileExtension - Accepted profile extensions
// ---------------------------------------------------------------------------

func TestValidateProfileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"me.yaml", false},
		{"me.yml", false},
		{"me.json", false},
		{"ME.YAML", false},
		{"me.md", true},
		{"me", true},
		{"me.yaml.bak", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			err := validateProfileExtension(tt.path)
			if tt.wantErr && !errors.Is(err, ErrInvalidExtension) {
				t.Errorf("validateProfileExtension(%q) error = %v, want ErrInvalidExtension", tt.path, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateProfileExtension(%q) error = %v", tt.path, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverProfiles - Expansion of files and directories
// ---------------------------------------------------------------------------

func TestDiscoverProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", janeProfile)
	b := writeFile(t, dir, "b.json", `{"name": "B"}`)
	c := writeFile(t, dir, "sub/c.yml", "name: C\n")
	writeFile(t, dir, "notes.txt", "not a profile")
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	t.Run("directory is walked", func(t *testing.T) {
		t.Parallel()

		got, err := discoverProfiles([]string{dir})
		if err != nil {
			t.Fatalf("discoverProfiles() error = %v", err)
		}
		if want := []string{a, b, c}; !slices.Equal(got, want) {
			t.Errorf("discoverProfiles() = %v, want %v", got, want)
		}
	})

	t.Run("files keep argument order", func(t *testing.T) {
		t.Parallel()

		got, err := discoverProfiles([]string{c, a})
		if err != nil {
			t.Fatalf("discoverProfiles() error = %v", err)
		}
		if want := []string{c, a}; !slices.Equal(got, want) {
			t.Errorf("discoverProfiles() = %v, want %v", got, want)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			args    []string
			wantErr error
		}{
			{"no args", nil, ErrNoInput},
			{"missing file", []string{filepath.Join(dir, "missing.yaml")}, os.ErrNotExist},
			{"wrong extension", []string{filepath.Join(dir, "notes.txt")}, ErrInvalidExtension},
			{"directory without profiles", []string{empty}, ErrNoInput},
		}

		for _, tt := range tests {
			if _, err := discoverProfiles(tt.args); !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("set flags override", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Engine: "native",
			Output: config.OutputConfig{DefaultDir: "cfg-out"},
			Page:   config.PageConfig{Size: "a4", Margin: 1},
			Limits: config.LimitsConfig{Achievements: 2},
		}
		flags := &generateFlags{
			engine:    "browser",
			output:    "flag-out",
			timestamp: "compact",
			timeout:   "1m",
			producer:  "Acme",
			page:      pageFlags{size: "letter", margin: 0.5},
			limits:    limitFlags{achievements: -1, certifications: 5, skills: 20, overflowMarker: true},
			assets:    assetFlags{style: "compact", assetPath: "assets"},
		}

		mergeFlags(flags, cfg)

		want := config.Config{
			Engine:   "browser",
			Output:   config.OutputConfig{DefaultDir: "flag-out", TimestampFormat: "compact"},
			Page:     config.PageConfig{Size: "letter", Margin: 0.5},
			Limits:   config.LimitsConfig{Achievements: -1, Certifications: 5, Skills: 20, OverflowMarker: true},
			Browser:  config.BrowserConfig{Timeout: "1m", Style: "compact"},
			Assets:   config.AssetsConfig{BasePath: "assets"},
			Metadata: config.MetadataConfig{Producer: "Acme"},
		}
		if *cfg != want {
			t.Errorf("mergeFlags() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Engine: "browser",
			Page:   config.PageConfig{Size: "letter", Margin: 1},
			Limits: config.LimitsConfig{Skills: 3, OverflowMarker: true},
		}
		want := *cfg

		mergeFlags(&generateFlags{}, cfg)

		if *cfg != want {
			t.Errorf("mergeFlags() = %+v, want %+v", *cfg, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Config resolution from flag and environment
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flagPath := writeFile(t, dir, "flag.yaml", "engine: browser\n")
	envPath := writeFile(t, dir, "env.yaml", "page:\n  size: letter\n")

	t.Run("no config uses defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", "")
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if *cfg != *config.DefaultConfig() {
			t.Errorf("loadConfig() = %+v, want defaults", *cfg)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig(flagPath, envPath)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Engine != "browser" || cfg.Page.Size != "" {
			t.Errorf("loadConfig() = %+v, want flag config", *cfg)
		}
	})

	t.Run("env used without flag", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", envPath)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Page.Size != "letter" {
			t.Errorf("Page.Size = %q, want letter", cfg.Page.Size)
		}
	})

	t.Run("missing config has hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("no-such-config-name", "")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error %q has no hint", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Config to serializer options
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Page:    config.PageConfig{Size: "letter", Margin: 1},
			Browser: config.BrowserConfig{Timeout: "45s"},
		}
		opts, err := buildOptions(cfg, env)
		if err != nil {
			t.Fatalf("buildOptions() error = %v", err)
		}
		s, err := cvpdf.NewNativeSerializer(opts...)
		if err != nil {
			t.Fatalf("NewNativeSerializer() error = %v", err)
		}
		_ = s.Close()
	})

	t.Run("invalid margin", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Page: config.PageConfig{Margin: 9}}
		if _, err := buildOptions(cfg, env); !errors.Is(err, cvpdf.ErrInvalidMargin) {
			t.Errorf("buildOptions() error = %v, want ErrInvalidMargin", err)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Browser: config.BrowserConfig{Timeout: "soon"}}
		if _, err := buildOptions(cfg, env); !errors.Is(err, config.ErrInvalidValue) {
			t.Errorf("buildOptions() error = %v, want ErrInvalidValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunGenerate - End-to-end generation with the native engine
// ---------------------------------------------------------------------------

func TestRunGenerate(t *testing.T) {
	t.Parallel()

	t.Run("single profile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "out")
		profile := writeFile(t, dir, "jane.yaml", janeProfile)
		env, stdout, _ := testEnv()

		err := runGenerate(context.Background(), []string{profile}, &generateFlags{output: out}, env)
		if err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}

		want := filepath.Join(out, "Jane_Doe_CV.pdf")
		data, err := os.ReadFile(want)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-1.4")) {
			t.Error("output is not a PDF")
		}
		if !strings.Contains(stdout.String(), "Created "+want) {
			t.Errorf("stdout = %q, want Created line", stdout.String())
		}
	})

	t.Run("explicit filename and timestamp", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		profile := writeFile(t, dir, "jane.yaml", janeProfile)
		env, _, _ := testEnv()

		flags := &generateFlags{output: dir, filename: "resume.pdf", timestamp: "compact"}
		if err := runGenerate(context.Background(), []string{profile}, flags, env); err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "resume.pdf")); err != nil {
			t.Errorf("explicit filename not used: %v", err)
		}
	})

	t.Run("timestamped derived name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		profile := writeFile(t, dir, "jane.yaml", janeProfile)
		env, _, _ := testEnv()

		flags := &generateFlags{output: dir, timestamp: "compact"}
		if err := runGenerate(context.Background(), []string{profile}, flags, env); err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "Jane_Doe_CV_20260115.pdf")); err != nil {
			t.Errorf("timestamped file missing: %v", err)
		}
	})

	t.Run("batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "in")
		out := filepath.Join(dir, "out")
		writeFile(t, in, "jane.yaml", janeProfile)
		writeFile(t, in, "john.json", `{"name": "John Smith", "skills": ["Go"]}`)
		env, stdout, _ := testEnv()

		if err := runGenerate(context.Background(), []string{in}, &generateFlags{output: out, workers: 2}, env); err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}
		for _, name := range []string{"Jane_Doe_CV.pdf", "John_Smith_CV.pdf"} {
			if _, err := os.Stat(filepath.Join(out, name)); err != nil {
				t.Errorf("%s missing: %v", name, err)
			}
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q, want summary", stdout.String())
		}
	})

	t.Run("failed profile reports hint", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		profile := writeFile(t, dir, "nameless.yaml", "headline: Someone\n")
		env, _, stderr := testEnv()

		err := runGenerate(context.Background(), []string{profile}, &generateFlags{output: dir}, env)
		if !errors.Is(err, cvpdf.ErrEmptyName) {
			t.Fatalf("runGenerate() error = %v, want ErrEmptyName", err)
		}
		var be *batchError
		if !errors.As(err, &be) || be.failed != 1 {
			t.Errorf("error = %#v, want batchError with 1 failure", err)
		}
		if !strings.Contains(stderr.String(), "FAILED "+profile) || !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("usage errors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "a.yaml", janeProfile)
		b := writeFile(t, dir, "b.yaml", "name: B\n")

		tests := []struct {
			name    string
			args    []string
			flags   generateFlags
			wantErr error
		}{
			{"filename with batch", []string{a, b}, generateFlags{output: dir, filename: "x.pdf"}, ErrFilenameWithBatch},
			{"negative workers", []string{a}, generateFlags{workers: -1}, ErrInvalidWorkerCount},
			{"unknown engine", []string{a}, generateFlags{engine: "latex"}, config.ErrInvalidValue},
			{"bad page size", []string{a}, generateFlags{page: pageFlags{size: "tabloid"}}, config.ErrInvalidValue},
			{"bad timestamp", []string{a}, generateFlags{timestamp: "[YYYY"}, config.ErrInvalidValue},
			{"no input", nil, generateFlags{}, ErrNoInput},
		}

		for _, tt := range tests {
			env, _, _ := testEnv()
			err := runGenerate(context.Background(), tt.args, &tt.flags, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"browser connect", cvpdf.ErrBrowserConnect, "--engine native"},
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"output directory", cvpdf.ErrMissingDestination, "writable"},
		{"style", cvpdf.ErrStyleNotFound, "available:"},
		{"empty name", cvpdf.ErrEmptyName, "name:"},
		{"engine", cvpdf.ErrInvalidEngine, "native, browser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hintFor(tt.err); !strings.Contains(got, tt.wantHint) {
				t.Errorf("hintFor(%v) = %q, want it to contain %q", tt.err, got, tt.wantHint)
			}
		})
	}

	if got := hintFor(errors.New("other")); got != "" {
		t.Errorf("hintFor(other) = %q, want empty", got)
	}
}
