package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

// Default asset names.
const (
	DefaultStyleName    = "cv"
	DefaultTemplateName = "cv"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
)

//go:embed styles/*.css templates/*.md
var embedded embed.FS

// Kind selects an asset directory and extension.
type Kind int

const (
	Style Kind = iota
	Template
)

var kinds = [...]struct {
	name     string
	dir      string
	ext      string
	notFound error
}{
	Style:    {"style", "styles", ".css", ErrStyleNotFound},
	Template: {"template", "templates", ".md", ErrTemplateNotFound},
}

func (k Kind) String() string { return kinds[k].name }

// ValidateName rejects empty names and names that could select a file
// other than {dir}/{name}{ext}.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) || !fs.ValidPath(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// Store looks assets up in its layers in order.
type Store struct {
	layers []fs.FS
	root   *os.Root
}

// Embedded returns a Store holding only the built-in assets.
func Embedded() *Store {
	return &Store{layers: []fs.FS{embedded}}
}

// Open returns a Store that prefers assets under basePath. An empty
// basePath is the same as Embedded.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return Embedded(), nil
	}

	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, basePath)
	}

	root, err := os.OpenRoot(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &Store{layers: []fs.FS{root.FS(), embedded}, root: root}, nil
}

// Close releases the custom directory, if any.
func (s *Store) Close() error {
	if s.root == nil {
		return nil
	}
	err := s.root.Close()
	s.root = nil
	return err
}

// Load returns the content of the named asset. A missing asset in one layer
// falls through to the next; any other read error stops the lookup.
func (s *Store) Load(kind Kind, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	k := kinds[kind]
	file := path.Join(k.dir, name+k.ext)
	for _, layer := range s.layers {
		data, err := fs.ReadFile(layer, file)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, file, err)
		}
	}
	return "", fmt.Errorf("%w: %q", k.notFound, name)
}

// Style returns the CSS of the named style.
func (s *Store) Style(name string) (string, error) { return s.Load(Style, name) }

// Template returns the named document template.
func (s *Store) Template(name string) (string, error) { return s.Load(Template, name) }

// Names lists every asset of kind across all layers, sorted, without duplicates.
func (s *Store) Names(kind Kind) []string {
	k := kinds[kind]
	var names []string
	for _, layer := range s.layers {
		entries, err := fs.ReadDir(layer, k.dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if name, ok := strings.CutSuffix(e.Name(), k.ext); ok && !e.IsDir() && ValidateName(name) == nil {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

var defaultStore = Embedded()

// LoadTemplate returns an embedded template.
func LoadTemplate(name string) (string, error) { return defaultStore.Template(name) }

// Styles lists the embedded style names.
func Styles() []string { return defaultStore.Names(Style) }
