package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size   string
	margin float64
}

// limitFlags holds list caps. Zero keeps the config value.
type limitFlags struct {
	achievements   int
	certifications int
	skills         int
	overflowMarker bool
}

// assetFlags holds browser engine asset flags.
type assetFlags struct {
	style     string // Name or path for CSS
	assetPath string // Override asset directory
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common    commonFlags
	output    string
	filename  string
	engine    string
	workers   int
	timeout   string
	timestamp string
	producer  string
	page      pageFlags
	limits    limitFlags
	assets    assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addLimitFlags adds list cap flags to a FlagSet.
func addLimitFlags(fs *flag.FlagSet, f *limitFlags) {
	fs.IntVar(&f.achievements, "max-achievements", 0, "achievements per position (-1 = all)")
	fs.IntVar(&f.certifications, "max-certifications", 0, "certifications shown (-1 = all)")
	fs.IntVar(&f.skills, "max-skills", 0, "skills shown (-1 = all)")
	fs.BoolVar(&f.overflowMarker, "overflow-marker", false, "append \"(+N more)\" to capped lists")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path (browser engine)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (browser engine)")
}

// registerGenerateFlags registers every generate flag on fs.
func registerGenerateFlags(fs *flag.FlagSet, f *generateFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.filename, "filename", "f", "", "output file name (single profile only)")
	fs.StringVarP(&f.engine, "engine", "e", "", "rendering engine: native, browser")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.timestamp, "timestamp", "", "timestamp derived file names: iso, compact, stamp, month or a token format")
	fs.StringVar(&f.producer, "producer", "", "document producer entry")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addLimitFlags(fs, &f.limits)
	addAssetFlags(fs, &f.assets)
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}
	registerGenerateFlags(fs, f)

	fs.Usage = func() { printGenerateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	json bool
	text bool
}

// registerInspectFlags registers every inspect flag on fs.
func registerInspectFlags(fs *flag.FlagSet, f *inspectFlags) {
	fs.BoolVar(&f.json, "json", false, "print reports as JSON")
	fs.BoolVarP(&f.text, "text", "t", false, "include the text drawn on each page")
}

// parseInspectFlags parses inspect command flags and returns positional args.
func parseInspectFlags(args []string) (*inspectFlags, []string, error) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	f := &inspectFlags{}
	registerInspectFlags(fs, f)

	fs.Usage = func() { printInspectUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
