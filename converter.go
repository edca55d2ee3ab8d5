package cv2pdf

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/layout"
	"github.com/alnah/go-cv2pdf/internal/logfields"
	"github.com/alnah/go-cv2pdf/internal/pipeline"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// documentLang is the lang attribute of the generated document.
const documentLang = "en"

// Converter renders CV documents to PDF.
// Create with NewConverter, call Render per document, and Close when done.
type Converter struct {
	cfg          converterConfig
	sheet        *style.Sheet
	assetLoader  assets.AssetLoader
	baseCSS      string
	blocks       *pipeline.BlockRenderer
	document     *pipeline.DocumentTemplate
	footer       *pipeline.FooterTemplate
	pdfConverter pdfConverter
	now          func() time.Time
}

// NewConverter creates a Converter bound to a style sheet.
// Returns an error if the base CSS or the templates cannot be loaded.
func NewConverter(sheet *style.Sheet, opts ...Option) (*Converter, error) {
	if sheet == nil {
		return nil, ErrNilStyleSheet
	}

	c := &Converter{
		cfg: converterConfig{
			timeout:         defaultTimeout,
			logger:          slog.New(slog.DiscardHandler),
			styleName:       assets.DefaultStyleName,
			templateSetName: assets.DefaultTemplateSetName,
		},
		sheet:  sheet,
		blocks: pipeline.NewBlockRenderer(sheet),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.loadAssets(); err != nil {
		return nil, err
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.cfg.logger)
	}

	return c, nil
}

// loadAssets resolves the base CSS and parses the document and footer templates.
func (c *Converter) loadAssets() error {
	if c.assetLoader == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	css, err := c.assetLoader.LoadStyle(c.cfg.styleName)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", c.cfg.styleName, err)
	}
	c.baseCSS = css

	set, err := c.assetLoader.LoadTemplateSet(c.cfg.templateSetName)
	if err != nil {
		return fmt.Errorf("loading template set %q: %w", c.cfg.templateSetName, err)
	}

	if c.document, err = pipeline.NewDocumentTemplate(set.Document); err != nil {
		return fmt.Errorf("template set %q: %w", set.Name, err)
	}
	if c.footer, err = pipeline.NewFooterTemplate(set.Footer); err != nil {
		return fmt.Errorf("template set %q: %w", set.Name, err)
	}
	return nil
}

// Render assembles the CV blocks and prints them to PDF.
// If input.HTMLOnly is true, PDF generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}

	start := time.Now()
	asm := layout.NewAssembler(
		layout.WithShowGrid(c.cfg.showGrid),
		layout.WithVersionLabel(c.cfg.versionLabel),
	)

	doc, err := BuildDocument(input.CV, asm, input.Policy, input.Redacted)
	if err != nil {
		return nil, err
	}
	if len(doc.Unplaced) > 0 {
		c.cfg.logger.Warn("experience entries not placed by page policy", logfields.Entries(doc.Unplaced))
	}
	c.cfg.logger.Debug("blocks assembled", logfields.Stage("build"), logfields.Redacted(input.Redacted), logfields.Since(start))

	start = time.Now()
	htmlContent, err := c.renderDocument(ctx, input.CV.Name, input.CV.Title, doc)
	if err != nil {
		return nil, err
	}
	c.cfg.logger.Debug("HTML rendered", logfields.Stage("html"), logfields.Bytes(len(htmlContent)), logfields.Since(start))

	res := &Result{HTML: []byte(htmlContent), Document: doc}
	if input.HTMLOnly {
		return res, nil
	}

	date := input.Date
	if date == "" {
		if date, err = dateutil.Format(dateutil.DefaultDateFormat, c.now()); err != nil {
			return nil, err
		}
	}

	footerHTML, err := c.renderFooter(asm.Footer(input.CV.Footer, date), page)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Page:           page,
		FooterTemplate: footerHTML,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.cfg.logger.Debug("PDF printed", logfields.Stage("pdf"), logfields.Bytes(len(pdfBytes)), logfields.Since(start))

	res.PDF = pdfBytes
	return res, nil
}

// renderDocument renders the blocks into the document template with the base
// CSS and the style sheet CSS in its head.
func (c *Converter) renderDocument(ctx context.Context, name, title string, doc *Document) (string, error) {
	body, err := c.blocks.Render(doc.Blocks)
	if err != nil {
		return "", fmt.Errorf("rendering blocks: %w", err)
	}

	return c.document.Render(ctx, pipeline.DocumentData{
		Lang:  documentLang,
		Title: name + " - " + title,
		Body:  template.HTML(body), // #nosec G203 -- CV text is trusted inline markup
	}, c.css())
}

// renderFooter renders the footer table into the footer template, placed over
// the content width at the footer offset above the page bottom.
func (c *Converter) renderFooter(f layout.FooterBlock, page *PageSettings) (string, error) {
	content, err := c.blocks.RenderFooter(f)
	if err != nil {
		return "", fmt.Errorf("rendering footer: %w", err)
	}

	return c.footer.Render(pipeline.FooterData{
		CSS:     template.CSS(c.css()), // #nosec G203 -- assets and style sheet are trusted
		Content: template.HTML(content), // #nosec G203 -- CV text is trusted inline markup
		Left:    layout.Cm(page.Margins.Left),
		Bottom:  f.Offset,
		Width:   page.ContentWidth(),
	})
}

func (c *Converter) css() string {
	return c.baseCSS + "\n" + c.sheet.CSS()
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks the input before any block is built.
//
// This is a TRUST BOUNDARY for library users who build Input manually. CLI
// users have their data validated at load time; both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.CV == nil {
		return ErrNilCV
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Policy.Validate(); err != nil {
		return err
	}
	if input.Redacted {
		if err := input.CV.CheckRedactable(); err != nil {
			return err
		}
	}
	return nil
}
