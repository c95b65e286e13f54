package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/hints"
)

// Doctor statuses, ordered by severity.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the full diagnosis, printed as text or JSON.
type doctorResult struct {
	Status   string     `json:"status"`
	Native   bool       `json:"native_engine"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     bool   `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin,omitempty"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd prints the diagnosis. Only errors fail the command: a missing
// Chrome leaves the native engine usable.
func runDoctorCmd(args []string, env *Environment) int {
	result := runDoctor(hints.DetectHost(os.Getenv), launcher.LookPath)

	if slices.Contains(args, "--json") {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor diagnoses host. lookPath finds a Chrome binary when
// ROD_BROWSER_BIN is unset.
func runDoctor(host hints.Host, lookPath func() (string, bool)) *doctorResult {
	r := &doctorResult{
		Native: true,
		Env: envInfo{
			OS:            runtime.GOOS,
			Arch:          runtime.GOARCH,
			Container:     host.Container,
			ContainerHint: host.ContainerHint,
			CI:            host.CI,
			NoSandbox:     host.NoSandbox,
			BrowserBin:    host.BrowserBin,
		},
	}

	r.Chrome = findChrome(r, host.BrowserBin, lookPath)
	if r.Chrome.Found {
		r.Chrome.Sandbox = !host.NoSandbox
		if host.NeedsNoSandbox() {
			r.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
		}
	}
	r.System.TempWritable = checkTempDir(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// findChrome locates the browser and asks it for its version.
func findChrome(r *doctorResult, bin string, lookPath func() (string, bool)) chromeInfo {
	if bin == "" {
		path, ok := lookPath()
		if !ok {
			r.warn("Chrome/Chromium not found: the browser engine is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return chromeInfo{}
		}
		bin = path
	}
	if _, err := os.Stat(bin); err != nil {
		r.warn("Chrome not found at %s: the browser engine is unavailable", bin)
		return chromeInfo{}
	}

	info := chromeInfo{Found: true, Path: bin}
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- detected browser binary
	if err != nil {
		r.warn("Could not get Chrome version: %v", err)
		return info
	}
	info.Version = strings.TrimSpace(string(out))
	return info
}

// checkTempDir verifies the directory the browser engine stages pages in.
func checkTempDir(r *doctorResult) bool {
	f, err := os.CreateTemp("", "cvpdf-doctor-*")
	if err != nil {
		r.fail("Temp directory not writable: %s", os.TempDir())
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// line prints one indented check with its level tag.
func line(w io.Writer, level, format string, args ...any) {
	fmt.Fprintf(w, "  [%s] %s\n", level, fmt.Sprintf(format, args...))
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "cvpdf doctor")

	fmt.Fprintln(w, "\nEngines")
	line(w, "OK", "native: ready")
	if r.Chrome.Found {
		line(w, "OK", "browser: ready")
	} else {
		line(w, "WARN", "browser: Chrome not found")
	}

	fmt.Fprintln(w, "\nChrome/Chromium")
	switch {
	case !r.Chrome.Found:
		line(w, "WARN", "Not found")
	default:
		line(w, "OK", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line(w, "OK", "Version: %s", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			line(w, "OK", "Sandbox: enabled")
		} else {
			line(w, "OK", "Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	}

	fmt.Fprintln(w, "\nEnvironment")
	line(w, "OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line(w, "OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line(w, "OK", "CI: detected")
	}

	fmt.Fprintln(w, "\nSystem")
	if r.System.TempWritable {
		line(w, "OK", "Temp directory: writable")
	} else {
		line(w, "ERROR", "Temp directory: not writable")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, msg := range r.Warnings {
			line(w, "WARN", "%s", msg)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, msg := range r.Errors {
			line(w, "ERROR", "%s", msg)
		}
	}

	fmt.Fprintln(w)
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to generate")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
