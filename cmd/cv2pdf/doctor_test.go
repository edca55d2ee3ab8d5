package main

// Notes:
// - runDoctor: the Chrome lookup is replaced through chromeLookPath; we never
//   launch a real browser. ROD_BROWSER_BIN pointing at a shell script stands
//   in for a Chrome binary answering --version.
// - Tests use t.Setenv() and swap a package variable, so none run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// stubChromeLookPath replaces the browser lookup for the duration of the test.
func stubChromeLookPath(t *testing.T, path string, found bool) {
	t.Helper()
	orig := chromeLookPath
	chromeLookPath = func() (string, bool) { return path, found }
	t.Cleanup(func() { chromeLookPath = orig })
}

// clearDoctorEnv unsets the variables that steer the environment checks.
func clearDoctorEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ROD_NO_SANDBOX", "ROD_BROWSER_BIN", "CV2PDF_CONFIG", "CV2PDF_FONTS_DIR", "CV2PDF_DATA",
		"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI",
		"container", "KUBERNETES_SERVICE_HOST",
	} {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatal(err)
		}
	}
}

// fakeChrome writes an executable answering --version.
func fakeChrome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "chrome")
	script := "#!/bin/sh\necho 'Chromium 130.0.0.0'\n"
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil { // #nosec G306 -- test executable
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor_Ready(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)

	dir := t.TempDir()
	writeFontFiles(t, dir, "Lato")
	t.Setenv("CV2PDF_FONTS_DIR", dir)
	t.Setenv("ROD_BROWSER_BIN", fakeChrome(t))
	t.Setenv("ROD_NO_SANDBOX", "1")

	r := runDoctor("")

	if !r.Chrome.Found || r.Chrome.Version != "Chromium 130.0.0.0" {
		t.Errorf("Chrome = %+v", r.Chrome)
	}
	if r.Chrome.Sandbox {
		t.Error("Sandbox = true with ROD_NO_SANDBOX=1")
	}
	if !r.Fonts.Found || r.Fonts.Family != "Lato" || r.Fonts.Dir != dir {
		t.Errorf("Fonts = %+v", r.Fonts)
	}
	if !r.System.TempWritable {
		t.Error("TempWritable = false")
	}
	if len(r.Errors) != 0 {
		t.Errorf("Errors = %v, want none", r.Errors)
	}
}

func TestRunDoctor_ChromeMissing(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)

	dir := t.TempDir()
	writeFontFiles(t, dir, "Lato")
	t.Setenv("CV2PDF_FONTS_DIR", dir)

	r := runDoctor("")

	if r.Chrome.Found {
		t.Error("Chrome.Found = true, want false")
	}
	if r.Status != statusWarnings && r.Status != statusErrors {
		t.Errorf("Status = %q, want warnings", r.Status)
	}
	if !containsSubstring(r.Warnings, "ROD_BROWSER_BIN") {
		t.Errorf("Warnings = %v, want ROD_BROWSER_BIN hint", r.Warnings)
	}
}

func TestRunDoctor_BrowserBinMissing(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)
	t.Setenv("ROD_BROWSER_BIN", filepath.Join(t.TempDir(), "nope"))

	r := runDoctor("")

	if r.Status != statusErrors {
		t.Errorf("Status = %q, want errors", r.Status)
	}
	if !containsSubstring(r.Errors, "Chrome not found at") {
		t.Errorf("Errors = %v", r.Errors)
	}
}

func TestRunDoctor_FontsMissing(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)
	t.Setenv("CV2PDF_FONTS_DIR", t.TempDir())

	r := runDoctor("")

	if r.Fonts.Found {
		t.Error("Fonts.Found = true, want false")
	}
	if !containsSubstring(r.Errors, "Lato-Regular.ttf") {
		t.Errorf("Errors = %v, want font hint", r.Errors)
	}
}

func TestRunDoctor_ConfigMissing(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)

	r := runDoctor(filepath.Join(t.TempDir(), "missing.yaml"))

	if r.Status != statusErrors || !containsSubstring(r.Errors, "config file not found") {
		t.Errorf("Status = %q, Errors = %v", r.Status, r.Errors)
	}
}

func TestRunDoctor_Data(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)

	t.Run("valid file", func(t *testing.T) {
		dir := newWorkspace(t)
		t.Setenv("CV2PDF_DATA", filepath.Join(dir, "cv.yaml"))

		r := runDoctor("")

		if !r.Data.Found || !r.Data.Valid || r.Data.Experiences == 0 {
			t.Errorf("Data = %+v, want valid with experiences", r.Data)
		}
	})

	t.Run("missing file warns", func(t *testing.T) {
		t.Setenv("CV2PDF_DATA", filepath.Join(t.TempDir(), "cv.yaml"))

		r := runDoctor("")

		if r.Data.Found {
			t.Error("Data.Found = true, want false")
		}
		if !containsSubstring(r.Warnings, "CV data not found") {
			t.Errorf("Warnings = %v", r.Warnings)
		}
	})

	t.Run("invalid file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cv.yaml")
		if err := os.WriteFile(path, []byte("name: Jane Doe\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("CV2PDF_DATA", path)

		r := runDoctor("")

		if !r.Data.Found || r.Data.Valid {
			t.Errorf("Data = %+v, want found and invalid", r.Data)
		}
		if r.Status != statusErrors || !containsSubstring(r.Errors, "hint: required keys") {
			t.Errorf("Status = %q, Errors = %v", r.Status, r.Errors)
		}
	})
}

func TestRunDoctor_CISandboxWarning(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)
	t.Setenv("CI", "true")

	r := runDoctor("")

	if !r.Env.CI {
		t.Error("CI = false, want true")
	}
	if !containsSubstring(r.Warnings, "ROD_NO_SANDBOX") {
		t.Errorf("Warnings = %v, want sandbox warning", r.Warnings)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command output and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	clearDoctorEnv(t)
	stubChromeLookPath(t, "", false)

	dir := t.TempDir()
	writeFontFiles(t, dir, "Lato")
	t.Setenv("CV2PDF_FONTS_DIR", dir)

	t.Run("json", func(t *testing.T) {
		te := newTestEnv(&mockRenderer{}, nil)

		code := runDoctorCmd([]string{"--json"}, te.env)
		if code != ExitSuccess {
			t.Errorf("exit = %d, want %d", code, ExitSuccess)
		}

		var r doctorResult
		if err := json.Unmarshal(te.stdout.Bytes(), &r); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
		}
		if !r.Fonts.Found {
			t.Errorf("fonts = %+v", r.Fonts)
		}
	})

	t.Run("text", func(t *testing.T) {
		te := newTestEnv(&mockRenderer{}, nil)

		runDoctorCmd(nil, te.env)

		out := te.stdout.String()
		for _, want := range []string{"cv2pdf doctor", "Chrome/Chromium", "Fonts", "Status:"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("errors exit 1", func(t *testing.T) {
		te := newTestEnv(&mockRenderer{}, nil)

		code := runDoctorCmd([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}, te.env)
		if code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		te := newTestEnv(&mockRenderer{}, nil)

		if code := runDoctorCmd([]string{"--bogus"}, te.env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(te.stderr.String(), "Usage: cv2pdf doctor") {
			t.Errorf("stderr = %q", te.stderr.String())
		}
	})

	t.Run("help", func(t *testing.T) {
		te := newTestEnv(&mockRenderer{}, nil)

		if code := runDoctorCmd([]string{"-h"}, te.env); code != ExitSuccess {
			t.Errorf("exit = %d, want %d", code, ExitSuccess)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable report
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printDoctorResult(&buf, &doctorResult{
		Status:   statusErrors,
		Chrome:   chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 130", Sandbox: true},
		Fonts:    fontInfo{Family: "Lato", Dir: "fonts"},
		Env:      envInfo{OS: "linux", Arch: "amd64", Container: true, ContainerHint: "/.dockerenv"},
		Warnings: []string{"careful"},
		Errors:   []string{"broken"},
	})

	out := buf.String()
	for _, want := range []string{
		"[OK] Found at /usr/bin/chromium",
		"[OK] Sandbox: enabled",
		"[ERROR] Missing in fonts",
		"Container: detected (/.dockerenv)",
		"[ERROR] Temp directory: not writable",
		"[WARN] careful",
		"[ERROR] broken",
		"Status: Not ready",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
