package main

import (
	"encoding/json"
	"fmt"
	"io"

	cvpdf "github.com/ahmednasr999/opportunity-engine-sub001"
)

// inspectResult is one inspected file, as printed by --json.
type inspectResult struct {
	Path         string   `json:"path"`
	Version      string   `json:"version,omitempty"`
	Size         int64    `json:"size,omitempty"`
	Pages        int      `json:"pages,omitempty"`
	Objects      int      `json:"objects,omitempty"`
	XRefVerified bool     `json:"xref_verified"`
	XRefError    string   `json:"xref_error,omitempty"`
	Text         []string `json:"text,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// runInspect validates each PDF in args and prints a report.
// Returns the first read or validation error so the exit code reflects it.
func runInspect(args []string, flags *inspectFlags, env *Environment) error {
	if len(args) == 0 {
		return ErrNoInput
	}

	var (
		results  []inspectResult
		firstErr error
	)
	for _, path := range args {
		r := inspectResult{Path: path}
		report, err := cvpdf.InspectFile(path)
		if err != nil {
			r.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		} else {
			r.Version = report.Version
			r.Size = report.Size
			r.Pages = report.Pages
			r.Objects = report.Objects
			r.XRefVerified = report.XRefVerified
			r.XRefError = report.XRefError
			if flags.text {
				r.Text = report.Text
			}
			if !report.XRefVerified && firstErr == nil {
				firstErr = fmt.Errorf("%s: %w: %s", path, cvpdf.ErrOffsetMismatch, report.XRefError)
			}
		}
		results = append(results, r)
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
	} else {
		printInspectResults(env.Stdout, results)
	}
	return firstErr
}

// printInspectResults outputs human-readable reports.
func printInspectResults(w io.Writer, results []inspectResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, r.Path)
		if r.Error != "" {
			fmt.Fprintf(w, "  [ERROR] %s\n", r.Error)
			continue
		}
		fmt.Fprintf(w, "  [OK] Version: %s\n", r.Version)
		fmt.Fprintf(w, "  [OK] Size: %d bytes\n", r.Size)
		fmt.Fprintf(w, "  [OK] Pages: %d\n", r.Pages)
		if r.XRefVerified {
			fmt.Fprintf(w, "  [OK] Cross-reference: %d objects, offsets verified\n", r.Objects)
		} else {
			fmt.Fprintf(w, "  [ERROR] Cross-reference: %s\n", r.XRefError)
		}
		for _, line := range r.Text {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
