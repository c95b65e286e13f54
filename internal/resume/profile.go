// Package resume holds the profile model consumed by both rendering engines
// and the preparation step that turns a profile into what is actually shown:
// capped lists, dropped empty entries, the joined contact line and the list
// of sections left out.
package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/yamlutil"
)

// ErrEmptyName is returned for profiles without a usable name.
var ErrEmptyName = errors.New("profile name is empty")

// Profile is a résumé as supplied by the caller. It is never modified.
type Profile struct {
	Name           string            `yaml:"name" json:"name"`
	Headline       string            `yaml:"headline" json:"headline"`
	Location       string            `yaml:"location" json:"location"`
	Contact        map[string]string `yaml:"contact" json:"contact"`
	Summary        string            `yaml:"summary" json:"summary"`
	Experience     []Experience      `yaml:"experience" json:"experience"`
	Education      []Education       `yaml:"education" json:"education"`
	Certifications []string          `yaml:"certifications" json:"certifications"`
	Skills         []string          `yaml:"skills" json:"skills"`
}

// Experience is one position held.
type Experience struct {
	Title        string   `yaml:"title" json:"title"`
	Company      string   `yaml:"company" json:"company"`
	Period       string   `yaml:"period" json:"period"`
	Location     string   `yaml:"location" json:"location"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

// Education is one degree or diploma. Field and Year are optional.
type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Field       string `yaml:"field" json:"field"`
	Year        string `yaml:"year" json:"year"`
}

// Validate checks the only required field.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Load reads a profile from a YAML or JSON file. Unknown keys are ignored so
// profiles exported by other tools load as is.
func Load(path string) (*Profile, error) {
	var p Profile
	if err := yamlutil.ReadFile(path, &p, false); err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	return &p, nil
}
