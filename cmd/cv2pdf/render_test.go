package main

// Notes:
// - runRender: we test against a mock Renderer injected through
//   Environment.NewRenderer. Real browser rendering is covered by the root
//   package integration tests.
// - Font files are empty placeholders: the style sheet only checks that they
//   exist.
// - Tests that touch CV2PDF_* variables live in env_config_test.go and do not
//   run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock renderer and workspace
// ---------------------------------------------------------------------------

const testDataFile = "../../internal/cvdata/testdata/cv.yaml"

var fixedNow = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

type mockRenderer struct {
	input  cv2pdf.Input
	called bool
	closed bool
	result *cv2pdf.Result
	err    error
}

func (m *mockRenderer) Render(_ context.Context, input cv2pdf.Input) (*cv2pdf.Result, error) {
	m.called = true
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	res := &cv2pdf.Result{HTML: []byte("<html></html>")}
	if !input.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	return res, nil
}

func (m *mockRenderer) Close() error {
	m.closed = true
	return nil
}

// testEnv bundles the environment with the captured renderer state.
type testEnv struct {
	env      *Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	renderer *mockRenderer
	sheet    *style.Sheet
	opts     []cv2pdf.Option
}

func newTestEnv(renderer *mockRenderer, factoryErr error) *testEnv {
	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		renderer: renderer,
	}
	te.env = &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewRenderer: func(sheet *style.Sheet, opts ...cv2pdf.Option) (Renderer, error) {
			te.sheet = sheet
			te.opts = opts
			if factoryErr != nil {
				return nil, factoryErr
			}
			return te.renderer, nil
		},
	}
	return te
}

// newWorkspace returns a temp dir holding cv.yaml and a fonts/ dir with the
// Lato font files.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	data, err := os.ReadFile(testDataFile)
	if err != nil {
		t.Fatalf("reading test data: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cv.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	writeFontFiles(t, filepath.Join(dir, "fonts"), "Lato")
	return dir
}

func writeFontFiles(t *testing.T, dir, family string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	for _, variant := range []string{"Regular", "Bold", "Italic"} {
		path := filepath.Join(dir, family+"-"+variant+".ttf")
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

// workspaceFlags points the data, fonts and output at the workspace.
func workspaceFlags(dir string) *renderFlags {
	return &renderFlags{
		data:     filepath.Join(dir, "cv.yaml"),
		fontsDir: filepath.Join(dir, "fonts"),
		output:   filepath.Join(dir, "out"),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(got) != want {
		t.Errorf("%s = %q, want %q", filepath.Base(path), got, want)
	}
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s should not exist, stat err = %v", filepath.Base(path), err)
	}
}

// ---------------------------------------------------------------------------
// TestRunRender_Outputs - Output naming and modes
// ---------------------------------------------------------------------------

func TestRunRender_Outputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(f *renderFlags, dir string)
		wantFiles map[string]string
		wantGone  []string
	}{
		{
			name:      "default name",
			wantFiles: map[string]string{"out/CV Jane Doe.pdf": "%PDF-1.4 mock"},
			wantGone:  []string{"out/CV Jane Doe.html"},
		},
		{
			name:      "redacted suffix",
			modify:    func(f *renderFlags, _ string) { f.redacted = true },
			wantFiles: map[string]string{"out/CV Jane Doe - Redacted.pdf": "%PDF-1.4 mock"},
		},
		{
			name:   "html alongside pdf",
			modify: func(f *renderFlags, _ string) { f.outputMode.html = true },
			wantFiles: map[string]string{
				"out/CV Jane Doe.pdf":  "%PDF-1.4 mock",
				"out/CV Jane Doe.html": "<html></html>",
			},
		},
		{
			name:      "html only",
			modify:    func(f *renderFlags, _ string) { f.outputMode.htmlOnly = true },
			wantFiles: map[string]string{"out/CV Jane Doe.html": "<html></html>"},
			wantGone:  []string{"out/CV Jane Doe.pdf"},
		},
		{
			name: "explicit pdf path",
			modify: func(f *renderFlags, dir string) {
				f.output = filepath.Join(dir, "custom", "resume.PDF")
			},
			wantFiles: map[string]string{"custom/resume.PDF": "%PDF-1.4 mock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newWorkspace(t)
			flags := workspaceFlags(dir)
			if tt.modify != nil {
				tt.modify(flags, dir)
			}
			te := newTestEnv(&mockRenderer{}, nil)

			if err := runRender(context.Background(), nil, flags, te.env, discardLogger()); err != nil {
				t.Fatalf("runRender() error = %v", err)
			}

			for rel, want := range tt.wantFiles {
				path := filepath.Join(dir, filepath.FromSlash(rel))
				assertFileContent(t, path, want)
				if !strings.Contains(te.stdout.String(), "Created "+path) {
					t.Errorf("stdout = %q, want Created %s", te.stdout.String(), path)
				}
			}
			for _, rel := range tt.wantGone {
				assertNotExist(t, filepath.Join(dir, filepath.FromSlash(rel)))
			}
			if !te.renderer.closed {
				t.Error("renderer should be closed")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunRender_Input - Values handed to the renderer
// ---------------------------------------------------------------------------

func TestRunRender_Input(t *testing.T) {
	t.Parallel()

	dir := newWorkspace(t)
	flags := workspaceFlags(dir)
	flags.redacted = true
	flags.outputMode.htmlOnly = true
	te := newTestEnv(&mockRenderer{}, nil)

	if err := runRender(context.Background(), nil, flags, te.env, discardLogger()); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	in := te.renderer.input
	if in.CV == nil || in.CV.Name != "Jane Doe" {
		t.Fatalf("CV = %+v, want Jane Doe", in.CV)
	}
	if !in.Redacted {
		t.Error("Redacted = false, want true")
	}
	if !in.HTMLOnly {
		t.Error("HTMLOnly = false, want true")
	}
	if in.Date != "04 March 2026" {
		t.Errorf("Date = %q, want %q", in.Date, "04 March 2026")
	}
	if in.Page == nil || *in.Page != *cv2pdf.DefaultPageSettings() {
		t.Errorf("Page = %+v, want defaults", in.Page)
	}
	if in.Policy != nil {
		t.Errorf("Policy = %+v, want nil", in.Policy)
	}
	if te.sheet == nil || te.sheet.Fonts().Family != style.DefaultFontFamily {
		t.Errorf("sheet family = %v, want %s", te.sheet, style.DefaultFontFamily)
	}
	if len(te.opts) != 4 {
		t.Errorf("got %d converter options, want 4", len(te.opts))
	}
}

// ---------------------------------------------------------------------------
// TestRunRender_Flags - Flag-driven overrides
// ---------------------------------------------------------------------------

func TestRunRender_Flags(t *testing.T) {
	t.Parallel()

	t.Run("positional data file", func(t *testing.T) {
		t.Parallel()

		dir := newWorkspace(t)
		flags := workspaceFlags(dir)
		flags.data = ""
		te := newTestEnv(&mockRenderer{}, nil)

		err := runRender(context.Background(), []string{filepath.Join(dir, "cv.yaml")}, flags, te.env, discardLogger())
		if err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if te.renderer.input.CV.Name != "Jane Doe" {
			t.Errorf("CV name = %q", te.renderer.input.CV.Name)
		}
	})

	t.Run("date format", func(t *testing.T) {
		t.Parallel()

		dir := newWorkspace(t)
		flags := workspaceFlags(dir)
		flags.date = "auto:[Updated] MMMM YYYY"
		te := newTestEnv(&mockRenderer{}, nil)

		if err := runRender(context.Background(), nil, flags, te.env, discardLogger()); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if got := te.renderer.input.Date; got != "Updated March 2026" {
			t.Errorf("Date = %q, want %q", got, "Updated March 2026")
		}
	})

	t.Run("timeout and assets add options", func(t *testing.T) {
		t.Parallel()

		dir := newWorkspace(t)
		flags := workspaceFlags(dir)
		flags.timeout = "45s"
		flags.assets.style = "default"
		flags.assets.template = "default"
		te := newTestEnv(&mockRenderer{}, nil)

		if err := runRender(context.Background(), nil, flags, te.env, discardLogger()); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if len(te.opts) != 7 {
			t.Errorf("got %d converter options, want 7", len(te.opts))
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		dir := newWorkspace(t)
		flags := workspaceFlags(dir)
		flags.common.quiet = true
		te := newTestEnv(&mockRenderer{}, nil)

		if err := runRender(context.Background(), nil, flags, te.env, discardLogger()); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if te.stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", te.stdout.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunRender_Config - Config file values
// ---------------------------------------------------------------------------

func TestRunRender_Config(t *testing.T) {
	t.Parallel()

	dir := newWorkspace(t)
	writeFontFiles(t, filepath.Join(dir, "alt"), "Inter")

	cfgPath := filepath.Join(dir, "cv2pdf.yaml")
	cfgYAML := `
output:
  dir: ` + filepath.Join(dir, "cfg-out") + `
  baseName: Resume
page:
  size: Letter
  margins:
    left: 3
fonts:
  family: Inter
  dir: ` + filepath.Join(dir, "alt") + `
footer:
  date: Spring 2026
layout:
  expertiseColumns: 3
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	flags := &renderFlags{
		common: commonFlags{config: cfgPath},
		data:   filepath.Join(dir, "cv.yaml"),
	}
	te := newTestEnv(&mockRenderer{}, nil)

	if err := runRender(context.Background(), nil, flags, te.env, discardLogger()); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	in := te.renderer.input
	if in.Page.Size != cv2pdf.PageSizeLetter {
		t.Errorf("Page.Size = %q, want letter", in.Page.Size)
	}
	if in.Page.Margins.Left != 3 || in.Page.Margins.Top != cv2pdf.DefaultMarginTopCm {
		t.Errorf("Margins = %+v, want left 3 and default top", in.Page.Margins)
	}
	if in.Date != "Spring 2026" {
		t.Errorf("Date = %q, want %q", in.Date, "Spring 2026")
	}
	if in.Policy == nil || in.Policy.ExpertiseColumns != 3 {
		t.Errorf("Policy = %+v, want expertise columns 3", in.Policy)
	}
	if te.sheet.Fonts().Family != "Inter" {
		t.Errorf("font family = %q, want Inter", te.sheet.Fonts().Family)
	}
	assertFileContent(t, filepath.Join(dir, "cfg-out", "Resume.pdf"), "%PDF-1.4 mock")
}

// ---------------------------------------------------------------------------
// TestRunRender_Errors - Error wrapping and hints
// ---------------------------------------------------------------------------

func TestRunRender_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		positional []string
		modify     func(f *renderFlags, dir string)
		renderErr  error
		factoryErr error
		wantErr    error
		wantMsg    string
	}{
		{
			name:       "too many arguments",
			positional: []string{"a.yaml", "b.yaml"},
			wantErr:    ErrTooManyArgs,
		},
		{
			name:    "invalid timeout",
			modify:  func(f *renderFlags, _ string) { f.timeout = "soon" },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			modify:  func(f *renderFlags, _ string) { f.timeout = "-1s" },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "missing data file",
			modify:  func(f *renderFlags, dir string) { f.data = filepath.Join(dir, "nope.yaml") },
			wantErr: cvdata.ErrReadData,
			wantMsg: "hint: pass the data file",
		},
		{
			name:    "missing fonts",
			modify:  func(f *renderFlags, dir string) { f.fontsDir = filepath.Join(dir, "empty") },
			wantErr: style.ErrFontNotFound,
			wantMsg: "Lato-Regular.ttf",
		},
		{
			name:    "bad date format",
			modify:  func(f *renderFlags, _ string) { f.date = "auto:" },
			wantErr: dateutil.ErrInvalidDateFormat,
			wantMsg: "footer date",
		},
		{
			name:    "config not found by name",
			modify:  func(f *renderFlags, _ string) { f.common.config = "no-such-config-xyz" },
			wantErr: config.ErrConfigNotFound,
			wantMsg: "hint: use --config",
		},
		{
			name:       "unknown style",
			factoryErr: cv2pdf.ErrStyleNotFound,
			wantErr:    cv2pdf.ErrStyleNotFound,
			wantMsg:    "hint:",
		},
		{
			name:      "page load timeout",
			renderErr: cv2pdf.ErrPageLoad,
			wantErr:   cv2pdf.ErrPageLoad,
			wantMsg:   "--timeout",
		},
		{
			name:      "browser connect",
			renderErr: cv2pdf.ErrBrowserConnect,
			wantErr:   cv2pdf.ErrBrowserConnect,
			wantMsg:   "rendering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newWorkspace(t)
			flags := workspaceFlags(dir)
			if tt.modify != nil {
				tt.modify(flags, dir)
			}
			te := newTestEnv(&mockRenderer{err: tt.renderErr}, tt.factoryErr)

			err := runRender(context.Background(), tt.positional, flags, te.env, discardLogger())
			if err == nil {
				t.Fatal("runRender() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag and environment timeout
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"neither", "", 0, 0, false},
		{"env only", "", time.Minute, time.Minute, false},
		{"flag wins", "10s", time.Minute, 10 * time.Second, false},
		{"zero flag", "0s", 0, 0, true},
		{"garbage", "fast", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTimeout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTimeout) {
				t.Errorf("error = %v, want ErrInvalidTimeout", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPagePolicy - Config pages to page policy
// ---------------------------------------------------------------------------

func TestBuildPagePolicy(t *testing.T) {
	t.Parallel()

	t.Run("nothing configured", func(t *testing.T) {
		t.Parallel()
		if got := buildPagePolicy(config.DefaultConfig()); got != nil {
			t.Errorf("buildPagePolicy() = %+v, want nil", got)
		}
	})

	t.Run("custom pages", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Pages = []config.PageLayout{
			{Sections: []string{cv2pdf.SectionIdentity}},
			{Sections: []string{cv2pdf.SectionExperiences}, Entries: []int{2, 0}, Wide: true, Gap: 12},
		}

		got := buildPagePolicy(cfg)
		if got == nil || len(got.Pages) != 2 {
			t.Fatalf("buildPagePolicy() = %+v, want 2 pages", got)
		}
		p := got.Pages[1]
		if len(p.Entries) != 2 || p.Entries[0] != 2 || !p.Wide || p.Gap != 12 {
			t.Errorf("page 2 = %+v", p)
		}
		if got.ExpertiseColumns != cv2pdf.DefaultPagePolicy().ExpertiseColumns {
			t.Errorf("ExpertiseColumns = %d, want default", got.ExpertiseColumns)
		}
	})
}
