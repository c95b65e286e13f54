package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"html", "html", nil},
		{"pdf", "pdf", nil},
		{"empty", "", fileutil.ErrExtensionEmpty},
		{"forward slash", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash", "..\\windows", fileutil.ErrExtensionPathTraversal},
		{"null byte", "html\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := fileutil.ValidateExtension(tt.extension); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation and cleanup
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<html><body>Jane Doe</body></html>"
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "cvpdf-") || !strings.HasSuffix(path, ".html") {
		t.Errorf("unexpected temp name %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after cleanup: %v", err)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "a/b")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("error = %v, want %v", err, fileutil.ErrExtensionPathTraversal)
	}
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic replacement of destination files
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "Jane_Doe_CV.pdf")

		if err := fileutil.WriteFileAtomic(path, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "%PDF-1.4" {
			t.Errorf("content = %q", got)
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("temp files left behind: %d entries", len(entries))
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "cv.pdf")
		if err := os.WriteFile(path, []byte("old contents"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("applies permissions", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("permission bits not supported")
		}
		path := filepath.Join(t.TempDir(), "cv.pdf")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing", "cv.pdf")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Error("expected error, got nil")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("destination should not exist")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if err := fileutil.WriteFileAtomic("", []byte("x"), 0o644); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want %v", err, fileutil.ErrEmptyPath)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(file, []byte("name: x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "nope"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		if got := fileutil.FileExists(tt.path); got != tt.want {
			t.Errorf("%s: FileExists(%q) = %v, want %v", tt.name, tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Style names versus paths
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"classic", false},
		{"my-style", false},
		{"./custom.css", true},
		{"../shared/style.css", true},
		{"/abs/style.css", true},
		{`C:\styles\cv.css`, true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
