package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the report printed by `cv2pdf doctor`, also as JSON.
type doctorResult struct {
	Status   string     `json:"status"`
	Config   string     `json:"config"`
	Chrome   chromeInfo `json:"chrome"`
	Fonts    fontInfo   `json:"fonts"`
	Data     dataInfo   `json:"data"`
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

type fontInfo struct {
	Family string `json:"family"`
	Dir    string `json:"dir"`
	Found  bool   `json:"found"`
}

type dataInfo struct {
	Path        string `json:"path"`
	Found       bool   `json:"found"`
	Valid       bool   `json:"valid"`
	Experiences int    `json:"experiences"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
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

// chromeLookPath locates the browser rod would launch.
var chromeLookPath = launcher.LookPath

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when ready (warnings included), 1 on errors, 2 on bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "print JSON")
	configName := fs.StringP("config", "c", "", "config file name or path")
	help := fs.BoolP("help", "h", false, "show help")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(env.Stderr, err)
		printDoctorUsage(env.Stderr)
		return ExitUsage
	}
	if *help {
		printDoctorUsage(env.Stdout)
		return ExitSuccess
	}

	result := runDoctor(*configName)

	if *jsonOutput {
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

// runDoctor resolves the config the way a render would, then checks
// everything a render needs before Chrome is started.
func runDoctor(configName string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Config: "defaults",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(configName, envCfg.ConfigPath)
	if err != nil {
		result.fail("%v", err)
	} else {
		if name := firstNonEmpty(configName, envCfg.ConfigPath); name != "" {
			result.Config = name
		}
		applyEnvConfig(envCfg, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
		checkFonts(result, cfg)
		checkData(result, cfg)
	}

	checkEnvironment(result)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}
	return result
}

func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		if chromePath, found = chromeLookPath(); !found {
			result.warn("Chrome/Chromium not found; rod downloads one on first render, or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.fail("Chrome not found at %s", chromePath)
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		result.warn("Could not get Chrome version: %v", err)
		return
	}
	result.Chrome.Version = strings.TrimSpace(string(out))
}

// checkFonts builds the style sheet exactly as a render does.
func checkFonts(result *doctorResult, cfg *config.Config) {
	result.Fonts.Family = cfg.Fonts.Family
	result.Fonts.Dir = firstNonEmpty(cfg.Fonts.Dir, defaultFontsDir)

	sheet, err := buildSheet(cfg)
	if err != nil {
		result.fail("%v%s", err, fontHint(err, cfg))
		return
	}
	result.Fonts.Family = sheet.Fonts().Family
	result.Fonts.Found = true
}

// checkData loads and validates the configured CV data file. A missing file
// only warns: the file is usually passed as an argument.
func checkData(result *doctorResult, cfg *config.Config) {
	path := resolveDataPath(cfg)
	result.Data.Path = path

	cv, err := cvdata.Load(path)
	switch {
	case errors.Is(err, cvdata.ErrReadData):
		result.warn("CV data not found at %s; pass the file as argument", path)
		return
	case err != nil:
		result.Data.Found = true
		result.fail("%v%s", err, dataHint(err, path))
		return
	}

	result.Data.Found = true
	result.Data.Valid = true
	result.Data.Experiences = len(cv.Experiences)
}

func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = hints.Container()
	result.Env.CI = hints.InCI()

	if hints.NeedsNoSandbox() {
		result.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkSystem verifies the temp directory receiving the HTML handed to Chrome.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp("", "cv2pdf-doctor-*")
	if err != nil {
		result.fail("Temp directory not writable: %s", os.TempDir())
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.TempWritable = true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Report line markers.
const (
	markOK    = "[OK]"
	markWarn  = "[WARN]"
	markError = "[ERROR]"
)

func line(w io.Writer, mark, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", mark, fmt.Sprintf(format, args...))
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "cv2pdf doctor (config: %s)\n\n", r.Config)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		line(w, markOK, "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line(w, markOK, "Version: %s", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			line(w, markOK, "Sandbox: enabled")
		} else {
			line(w, markOK, "Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		line(w, markWarn, "Not found")
	}

	fmt.Fprintln(w, "\nFonts")
	if r.Fonts.Found {
		line(w, markOK, "%s in %s", r.Fonts.Family, r.Fonts.Dir)
	} else {
		line(w, markError, "Missing in %s", r.Fonts.Dir)
	}

	fmt.Fprintln(w, "\nCV data")
	switch {
	case r.Data.Valid:
		line(w, markOK, "%s (%d experience entries)", r.Data.Path, r.Data.Experiences)
	case r.Data.Found:
		line(w, markError, "%s is invalid", r.Data.Path)
	default:
		line(w, markWarn, "%s not found", filepath.Clean(r.Data.Path))
	}

	fmt.Fprintln(w, "\nEnvironment")
	line(w, markOK, "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line(w, markOK, "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line(w, markOK, "CI: detected")
	}

	fmt.Fprintln(w, "\nSystem")
	if r.System.TempWritable {
		line(w, markOK, "Temp directory: writable")
	} else {
		line(w, markError, "Temp directory: not writable")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, msg := range r.Warnings {
			line(w, markWarn, "%s", msg)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, msg := range r.Errors {
			line(w, markError, "%s", msg)
		}
	}

	fmt.Fprintln(w)
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
