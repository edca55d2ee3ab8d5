package cv2pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/logfields"
	"github.com/alnah/go-cv2pdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// pdfOptions holds the page geometry and the per-page footer.
type pdfOptions struct {
	Page           *PageSettings
	FooterTemplate string // empty = no footer
}

const (
	pointsPerInch = 72.0
	cmPerInch     = 2.54
)

// emptyHeader disables Chrome's default header when the footer is shown.
const emptyHeader = "<span></span>"

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	logger   *slog.Logger
}

func newRodRenderer(timeout time.Duration, logger *slog.Logger) *rodRenderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &rodRenderer{timeout: timeout, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	start := time.Now()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.logger.Debug("browser started", logfields.PID(l.PID()), logfields.Since(start))
	return nil
}

// Close closes the browser and kills its process group, so no Chrome helper
// process outlives the render.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	pid := r.launcher.PID()
	if err := process.KillGroup(pid); err != nil {
		r.logger.Debug("killing browser process group", logfields.PID(pid), logfields.Error(err))
	}
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions converts page settings to Chrome print parameters.
// Chrome takes inches.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	footer := ""
	if opts != nil {
		if opts.Page != nil {
			page = opts.Page
		}
		footer = opts.FooterTemplate
	}

	w, h, _ := page.dimensions()
	m := page.Margins

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(w / pointsPerInch),
		PaperHeight:       floatPtr(h / pointsPerInch),
		MarginTop:         floatPtr(m.Top / cmPerInch),
		MarginBottom:      floatPtr(m.Bottom / cmPerInch),
		MarginLeft:        floatPtr(m.Left / cmPerInch),
		MarginRight:       floatPtr(m.Right / cmPerInch),
		PrintBackground:   true,
		PreferCSSPageSize: false,
	}

	if footer != "" {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = emptyHeader
		pdfOpts.FooterTemplate = footer
	}

	return pdfOpts
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
	closer   io.Closer
}

func newRodConverter(timeout time.Duration, logger *slog.Logger) *rodConverter {
	r := newRodRenderer(timeout, logger)
	return &rodConverter{renderer: r, closer: r}
}

// ToPDF writes the HTML to a temp file, so relative and file:// URLs resolve,
// and prints it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)
