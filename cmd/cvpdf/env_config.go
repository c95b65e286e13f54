package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // CVPDF_CONFIG: config file name or path
	Engine     string        // CVPDF_ENGINE: native or browser
	OutputDir  string        // CVPDF_OUTPUT_DIR: default output directory
	Style      string        // CVPDF_STYLE: CSS style name or path
	PageSize   string        // CVPDF_PAGE_SIZE: a4, letter
	Timeout    time.Duration // CVPDF_TIMEOUT: browser timeout
	Workers    int           // CVPDF_WORKERS: parallel workers
}

// knownEnvVars lists valid CVPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CVPDF_CONFIG":     true,
	"CVPDF_ENGINE":     true,
	"CVPDF_OUTPUT_DIR": true,
	"CVPDF_STYLE":      true,
	"CVPDF_PAGE_SIZE":  true,
	"CVPDF_TIMEOUT":    true,
	"CVPDF_WORKERS":    true,
	"CVPDF_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numeric values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CVPDF_CONFIG"),
		Engine:     os.Getenv("CVPDF_ENGINE"),
		OutputDir:  os.Getenv("CVPDF_OUTPUT_DIR"),
		Style:      os.Getenv("CVPDF_STYLE"),
		PageSize:   os.Getenv("CVPDF_PAGE_SIZE"),
	}

	if timeout := os.Getenv("CVPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CVPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CVPDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CVPDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" && cfg.Engine == "" {
		cfg.Engine = env.Engine
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Style != "" && cfg.Browser.Style == "" {
		cfg.Browser.Style = env.Style
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Timeout > 0 && cfg.Browser.Timeout == "" {
		cfg.Browser.Timeout = env.Timeout.String()
	}
}
