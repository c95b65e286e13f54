package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cvpdf "github.com/ahmednasr999/opportunity-engine-sub001"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/assets"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/config"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadProfile        = errors.New("failed to read profile")
	ErrInvalidExtension   = errors.New("profile must have .yaml, .yml or .json extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrFilenameWithBatch  = errors.New("--filename needs exactly one profile")
)

// profileExtensions lists the accepted profile file extensions.
var profileExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// batchError reports failed generations. It unwraps to the first failure so
// the exit code reflects its cause.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d generation(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// runGenerate orchestrates document generation for every profile in args.
func runGenerate(ctx context.Context, args []string, flags *generateFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	engine, err := cvpdf.ParseEngine(cfg.Engine)
	if err != nil {
		return err
	}

	profiles, err := discoverProfiles(args)
	if err != nil {
		return err
	}
	if flags.filename != "" && len(profiles) > 1 {
		return fmt.Errorf("%w: got %d profiles", ErrFilenameWithBatch, len(profiles))
	}

	opts, err := buildOptions(cfg, env)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(cvpdf.ResolvePoolSize(workers), len(profiles))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Engine: %s, pool size: %d\n", engine, poolSize)
	}

	pool := cvpdf.NewSerializerPool(engine, poolSize, opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			fmt.Fprintf(env.Stderr, "warning: closing serializers: %v\n", cerr)
		}
	}()

	dest := cvpdf.Destination{Dir: cfg.Output.DefaultDir, Filename: flags.filename}
	results := generateBatch(ctx, pool, profiles, dest)

	if failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return &batchError{failed: failed, first: firstError(results)}
	}
	return nil
}

// loadConfig loads the config named by the flag, else by CVPDF_CONFIG.
// Without either, defaults are returned.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.timestamp != "" {
		cfg.Output.TimestampFormat = flags.timestamp
	}
	if flags.timeout != "" {
		cfg.Browser.Timeout = flags.timeout
	}
	if flags.producer != "" {
		cfg.Metadata.Producer = flags.producer
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Limit flags
	if flags.limits.achievements != 0 {
		cfg.Limits.Achievements = flags.limits.achievements
	}
	if flags.limits.certifications != 0 {
		cfg.Limits.Certifications = flags.limits.certifications
	}
	if flags.limits.skills != 0 {
		cfg.Limits.Skills = flags.limits.skills
	}
	if flags.limits.overflowMarker {
		cfg.Limits.OverflowMarker = true
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Browser.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// buildOptions maps a validated config to serializer options.
func buildOptions(cfg *config.Config, env *Environment) ([]cvpdf.Option, error) {
	page := cvpdf.PageSettings{Size: cfg.Page.Size, Margin: cfg.Page.Margin}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	opts := []cvpdf.Option{
		cvpdf.WithPage(page),
		cvpdf.WithLimits(cvpdf.Limits{
			Achievements:   cfg.Limits.Achievements,
			Certifications: cfg.Limits.Certifications,
			Skills:         cfg.Limits.Skills,
			OverflowMarker: cfg.Limits.OverflowMarker,
		}),
		cvpdf.WithStyle(cfg.Browser.Style),
		cvpdf.WithAssetPath(cfg.Assets.BasePath),
		cvpdf.WithTimestamp(cfg.Output.TimestampFormat),
		cvpdf.WithProducer(cfg.Metadata.Producer),
		cvpdf.WithClock(env.Now),
	}

	timeout, err := cfg.Browser.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, cvpdf.WithTimeout(timeout))
	}
	return opts, nil
}

// discoverProfiles expands args into profile paths. Directories are walked
// recursively and their non-profile files skipped; explicit files must carry
// a profile extension.
func discoverProfiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateProfileExtension(arg); err != nil {
				return nil, err
			}
			paths = append(paths, arg)
			continue
		}

		found := 0
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !profileExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			paths = append(paths, path)
			found++
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discovering profiles: %w", err)
		}
		if found == 0 {
			return nil, fmt.Errorf("%w: no profiles found in %s", ErrNoInput, arg)
		}
	}
	return paths, nil
}

// validateProfileExtension checks that path has a profile extension.
func validateProfileExtension(path string) error {
	ext := filepath.Ext(path)
	if !profileExtensions[strings.ToLower(ext)] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > cvpdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, cvpdf.MaxPoolSize)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, cvpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect(hints.DetectHost(os.Getenv))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, cvpdf.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, cvpdf.ErrMissingDestination):
		return hints.ForOutputDirectory()
	case errors.Is(err, cvpdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.Styles())
	case errors.Is(err, cvpdf.ErrEmptyName):
		return hints.ForEmptyName()
	case errors.Is(err, cvpdf.ErrInvalidEngine):
		names := make([]string, 0, len(cvpdf.Engines()))
		for _, e := range cvpdf.Engines() {
			names = append(names, string(e))
		}
		return hints.ForEngine(names)
	default:
		return ""
	}
}
