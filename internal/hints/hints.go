// Package hints turns common failures into one-line suggestions, appended to
// error messages as "\n  hint: <text>".
package hints

import (
	"strings"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/fileutil"
)

// Host describes the machine the CLI runs on, as far as Chrome cares.
type Host struct {
	CI            bool
	Container     bool
	ContainerHint string // signal that identified the container
	NoSandbox     bool   // ROD_NO_SANDBOX=1
	BrowserBin    string // ROD_BROWSER_BIN
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// DetectHost reads the environment through getenv.
func DetectHost(getenv func(string) string) Host {
	h := Host{
		NoSandbox:  getenv("ROD_NO_SANDBOX") == "1",
		BrowserBin: getenv("ROD_BROWSER_BIN"),
	}
	for _, v := range ciVars {
		if getenv(v) != "" {
			h.CI = true
			break
		}
	}

	switch {
	case getenv("CVPDF_CONTAINER") == "1":
		h.Container, h.ContainerHint = true, "CVPDF_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		h.Container, h.ContainerHint = true, "/.dockerenv"
	case getenv("container") != "":
		h.Container, h.ContainerHint = true, "container="+getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		h.Container, h.ContainerHint = true, "KUBERNETES_SERVICE_HOST"
	}
	return h
}

// NeedsNoSandbox reports a CI or container host still running Chrome sandboxed.
func (h Host) NeedsNoSandbox() bool {
	return (h.CI || h.Container) && !h.NoSandbox
}

// ForBrowserConnect suggests fixes for a Chrome launch failure. The native
// engine needs no browser, so it is always offered.
func ForBrowserConnect(h Host) string {
	var tips []string
	if h.NeedsNoSandbox() {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if h.BrowserBin == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	tips = append(tips, "or use --engine native")
	return format(strings.Join(tips, "; "))
}

func ForTimeout() string {
	return format("for slow machines, use --timeout flag")
}

// ForConfigNotFound points at --config and at the user config directory
// when it is among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/cvpdf") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available styles, or returns "" if none.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func ForEmptyName() string {
	return format(`add a top-level "name:" to the profile`)
}

func ForEngine(available []string) string {
	return format("valid engines: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
