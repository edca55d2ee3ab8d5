package cv2pdf

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/layout"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Page dimensions in points, portrait.
var pageSizes = map[string][2]float64{
	PageSizeA4:     {595.28, 841.89},
	PageSizeLetter: {612, 792},
	PageSizeLegal:  {612, 1008},
}

// Default margins in centimetres.
const (
	DefaultMarginTopCm    = 1.5
	DefaultMarginBottomCm = 1.5
	DefaultMarginSideCm   = 2.0
	MaxMarginCm           = 10.0
)

// Margins holds page margins in centimetres.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// PageSettings configures page geometry.
type PageSettings struct {
	Size    string // "a4", "letter", "legal"
	Margins Margins
}

// DefaultPageSettings returns A4 with 1.5cm top/bottom and 2cm side margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size: PageSizeA4,
		Margins: Margins{
			Top:    DefaultMarginTopCm,
			Right:  DefaultMarginSideCm,
			Bottom: DefaultMarginBottomCm,
			Left:   DefaultMarginSideCm,
		},
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, _, ok := p.dimensions(); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	sides := []float64{p.Margins.Top, p.Margins.Right, p.Margins.Bottom, p.Margins.Left}
	for _, m := range sides {
		if m < 0 || m > MaxMarginCm {
			return fmt.Errorf("%w: %.2f (must be between 0 and %.0f cm)", ErrInvalidMargin, m, MaxMarginCm)
		}
	}

	return nil
}

// dimensions returns the page width and height in points.
func (p *PageSettings) dimensions() (w, h float64, ok bool) {
	size, ok := pageSizes[strings.ToLower(p.Size)]
	return size[0], size[1], ok
}

// ContentWidth returns the width between the side margins, in points.
func (p *PageSettings) ContentWidth() float64 {
	w, _, _ := p.dimensions()
	return w - layout.Cm(p.Margins.Left+p.Margins.Right)
}

// Input contains the parameters of one render.
type Input struct {
	CV       *cvdata.CV    // required
	Redacted bool          // blank personal identifiers, requires basics.redacted_note
	Page     *PageSettings // nil = DefaultPageSettings
	Policy   *PagePolicy   // nil = DefaultPagePolicy
	Date     string        // footer version date; empty = today, DD MMMM YYYY
	HTMLOnly bool          // skip PDF generation
}

// Result holds the output of a render.
type Result struct {
	HTML     []byte    // complete HTML document handed to the browser
	PDF      []byte    // nil in HTMLOnly mode
	Document *Document // assembled blocks and entry placement
}

// Output file naming.
const (
	BaseNamePrefix        = "CV "
	DefaultRedactedSuffix = " - Redacted"
)

// OutputFileName returns "<base>.pdf", or "<base><suffix>.pdf" when redacted.
// An empty base is "CV <name>", an empty suffix is " - Redacted".
func OutputFileName(name, base, suffix string, redacted bool) string {
	if base == "" {
		base = BaseNamePrefix + name
	}
	if redacted {
		if suffix == "" {
			suffix = DefaultRedactedSuffix
		}
		base += suffix
	}
	return base + ".pdf"
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout         time.Duration
	logger          *slog.Logger
	showGrid        bool
	versionLabel    string
	assetPath       string
	styleName       string
	templateSetName string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cv2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger for stage timings and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithShowGrid draws gridlines on every table, for layout debugging.
func WithShowGrid(show bool) Option {
	return func(c *Converter) {
		c.cfg.showGrid = show
	}
}

// WithVersionLabel sets the label printed before the footer date.
func WithVersionLabel(label string) Option {
	return func(c *Converter) {
		c.cfg.versionLabel = label
	}
}

// WithAssetPath adds a directory searched for styles and template sets before
// the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithStyle selects the base CSS by name.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}

// WithTemplateSet selects the document and footer templates by name.
func WithTemplateSet(name string) Option {
	return func(c *Converter) {
		c.cfg.templateSetName = name
	}
}
