// Package hints appends actionable advice to CLI error messages.
// Every hint is formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// userConfigDir is the directory part searched for named configs.
const userConfigDir = ".config/go-cv2pdf"

// IsInContainer reports whether the process runs in a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by the CI services we know of.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether one of the known CI variables is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// Container reports whether the process runs in a container, and the
// marker that gave it away.
func Container() (bool, string) {
	switch {
	case IsInContainer():
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// NeedsNoSandbox reports whether Chrome will likely refuse to start with
// its sandbox: in CI or a container, without ROD_NO_SANDBOX=1.
func NeedsNoSandbox() bool {
	inContainer, _ := Container()
	return (InCI() || inContainer) && os.Getenv("ROD_NO_SANDBOX") != "1"
}

// ForBrowserConnect returns hints for browser launch or connection errors.
func ForBrowserConnect() string {
	var hints []string
	if NeedsNoSandbox() {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about raising the render timeout.
func ForTimeout() string {
	return format("on slow machines, use --timeout 2m")
}

// ForConfigNotFound suggests --config or creating a user config.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigDir) {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForDataNotFound reminds the user where the CV data is looked up.
func ForDataNotFound(path string) string {
	return format("pass the data file as argument or set data.path in config (looked for " + path + ")")
}

// ForInvalidData points at the accepted data layout.
func ForInvalidData() string {
	return format("required keys: name, title, footer, basics.left, basics.right, experiences")
}

// ForFontNotFound lists the font files the renderer expects.
func ForFontNotFound(dir, family string) string {
	if family == "" {
		return ""
	}
	return format("expected " + family + "-Regular.ttf, " + family + "-Bold.ttf and " +
		family + "-Italic.ttf in " + dir + ", or set fonts.regular/bold/italic")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAssetNotFound lists the available style or template set names.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
