package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrDocumentRender = errors.New("document template rendering failed")
	ErrFooterRender   = errors.New("footer template rendering failed")
)

// DocumentData fills the document template.
type DocumentData struct {
	Lang  string
	Title string
	Body  template.HTML // rendered blocks, trusted
}

// DocumentTemplate wraps rendered blocks in a complete HTML document.
type DocumentTemplate struct {
	tmpl *template.Template
}

// NewDocumentTemplate parses the document template content.
func NewDocumentTemplate(content string) (*DocumentTemplate, error) {
	tmpl, err := template.New("document").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentTemplate{tmpl: tmpl}, nil
}

// Render executes the template and injects css into the document head.
func (d *DocumentTemplate) Render(ctx context.Context, data DocumentData, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data.Lang == "" {
		data.Lang = "en"
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return InjectCSS(buf.String(), css), nil
}

// FooterData fills the footer template. Lengths are in points, measured from
// the left and bottom edges of the page.
type FooterData struct {
	CSS     template.CSS
	Content template.HTML
	Left    float64
	Bottom  float64
	Width   float64
}

// FooterTemplate renders the HTML Chrome draws in the bottom margin of every
// page. Chrome isolates it from the document, so it carries its own CSS.
type FooterTemplate struct {
	tmpl *template.Template
}

// NewFooterTemplate parses the footer template content.
func NewFooterTemplate(content string) (*FooterTemplate, error) {
	tmpl, err := template.New("footer").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing footer template: %w", err)
	}
	return &FooterTemplate{tmpl: tmpl}, nil
}

// Render executes the footer template.
func (f *FooterTemplate) Render(data FooterData) (string, error) {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFooterRender, err)
	}
	return buf.String(), nil
}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>\n" + sanitizeCSS(cssContent) + "\n</style>\n"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the CSS cannot close the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
