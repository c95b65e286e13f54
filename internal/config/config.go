package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/dateutil"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/fileutil"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "cvpdf"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxEngineLength   = 10 // "native", "browser"
	MaxPageSizeLength = 10 // "a4", "letter"
	MaxStyleLength    = 2048
	MaxProducerLength = 100
	MaxTimeoutLength  = 20 // "90s", "2m30s"
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// Config holds all configuration for CV generation.
type Config struct {
	Engine   string         `yaml:"engine"` // "native" (default) or "browser"
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Limits   LimitsConfig   `yaml:"limits"`
	Browser  BrowserConfig  `yaml:"browser"`
	Assets   AssetsConfig   `yaml:"assets"`
	Metadata MetadataConfig `yaml:"metadata"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir      string `yaml:"defaultDir"`      // empty = current directory
	TimestampFormat string `yaml:"timestampFormat"` // empty = no timestamp in file names
}

// PageConfig defines page settings shared by both engines.
type PageConfig struct {
	Size   string  `yaml:"size"`   // "a4" (default) or "letter"
	Margin float64 `yaml:"margin"` // inches, 0 = default
}

// LimitsConfig caps list lengths. Zero keeps the default, -1 removes the cap.
type LimitsConfig struct {
	Achievements   int  `yaml:"achievements"`
	Certifications int  `yaml:"certifications"`
	Skills         int  `yaml:"skills"`
	OverflowMarker bool `yaml:"overflowMarker"`
}

// BrowserConfig defines options of the browser engine.
type BrowserConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s"
	Style   string `yaml:"style"`   // style name or path to a .css file
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// MetadataConfig defines document information entries.
type MetadataConfig struct {
	Producer string `yaml:"producer"`
}

// TimeoutDuration parses Timeout. An empty value returns zero.
func (b BrowserConfig) TimeoutDuration() (time.Duration, error) {
	if b.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(b.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: browser.timeout %q: %v", ErrInvalidValue, b.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: browser.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and values. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"engine", c.Engine, MaxEngineLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.timestampFormat", c.Output.TimestampFormat, dateutil.MaxDateFormatLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"browser.timeout", c.Browser.Timeout, MaxTimeoutLength},
		{"browser.style", c.Browser.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"metadata.producer", c.Metadata.Producer, MaxProducerLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Engine) {
	case "", "native", "browser":
	default:
		return fmt.Errorf("%w: engine %q (must be native or browser)", ErrInvalidValue, c.Engine)
	}

	switch strings.ToLower(c.Page.Size) {
	case "", "a4", "letter":
	default:
		return fmt.Errorf("%w: page.size %q (must be a4 or letter)", ErrInvalidValue, c.Page.Size)
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return fmt.Errorf("%w: page.margin %.2f (must be between %.2f and %.2f)",
			ErrInvalidValue, c.Page.Margin, MinMargin, MaxMargin)
	}

	limits := map[string]int{
		"limits.achievements":   c.Limits.Achievements,
		"limits.certifications": c.Limits.Certifications,
		"limits.skills":         c.Limits.Skills,
	}
	for name, v := range limits {
		if v < -1 {
			return fmt.Errorf("%w: %s must be -1, 0 or positive, got %d", ErrInvalidValue, name, v)
		}
	}

	if c.Output.TimestampFormat != "" {
		if _, err := dateutil.FormatTimestamp(c.Output.TimestampFormat, time.Time{}); err != nil {
			return fmt.Errorf("%w: output.timestampFormat: %w", ErrInvalidValue, err)
		}
	}

	if _, err := c.Browser.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Empty fields select the library defaults: native engine, A4, 0.75in margins.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFile(configPath, &cfg, true); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
