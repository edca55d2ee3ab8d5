// Package style holds the typographic definitions of a CV: the registered font
// family and the named paragraph styles.
//
// A Sheet is built once at start-up and passed to every component that needs
// it. Font files are checked when the sheet is built, so a missing font fails
// before any content is assembled.
package style

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// Sentinel errors for style operations.
var (
	ErrFontNotFound   = errors.New("font file not found")
	ErrInvalidFontSet = errors.New("invalid font set")
	ErrUnknownStyle   = errors.New("unknown style")
)

// Style names used by the layout.
const (
	Name              = "Name"
	JobTitle          = "JobTitle"
	Page1Section      = "Page1Section"
	Body              = "Body"
	BodyBold          = "BodyBold"
	ExperienceHeader  = "ExperienceHeader"
	ExperienceMeta    = "ExperienceMeta"
	ExperienceSection = "ExperienceSection"
	Footer            = "Footer"
	OtherSection      = "OtherSection"
)

// DefaultLinkColor is the colour of hyperlinks produced by markup expansion.
const DefaultLinkColor = "royalblue"

// Align is a horizontal text alignment.
type Align int

// Alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// CSS returns the text-align value.
func (a Align) CSS() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	}
	return "left"
}

// Style describes how a paragraph is set. Sizes are in points.
type Style struct {
	Name        string
	Bold        bool
	Italic      bool
	FontSize    float64
	Leading     float64
	SpaceBefore float64
	SpaceAfter  float64
	Align       Align
	Color       string // CSS colour, empty = inherit
}

// FontSet names one font family and its three font files.
type FontSet struct {
	Family  string
	Regular string
	Bold    string
	Italic  string
}

// DefaultFontFamily is the family registered when none is configured.
const DefaultFontFamily = "Lato"

// FontSetFromDir returns the conventional <Family>-Regular/Bold/Italic.ttf files in dir.
func FontSetFromDir(dir, family string) FontSet {
	if family == "" {
		family = DefaultFontFamily
	}
	return FontSet{
		Family:  family,
		Regular: filepath.Join(dir, family+"-Regular.ttf"),
		Bold:    filepath.Join(dir, family+"-Bold.ttf"),
		Italic:  filepath.Join(dir, family+"-Italic.ttf"),
	}
}

// resolve checks the font set and returns it with absolute paths.
func (f FontSet) resolve() (FontSet, error) {
	if f.Family == "" {
		return FontSet{}, fmt.Errorf("%w: family is empty", ErrInvalidFontSet)
	}

	files := []*string{&f.Regular, &f.Bold, &f.Italic}
	for _, p := range files {
		if *p == "" {
			return FontSet{}, fmt.Errorf("%w: %s needs regular, bold and italic files", ErrInvalidFontSet, f.Family)
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return FontSet{}, fmt.Errorf("%w: %s: %v", ErrFontNotFound, *p, err)
		}
		if !fileutil.FileExists(abs) {
			return FontSet{}, fmt.Errorf("%w: %s", ErrFontNotFound, abs)
		}
		*p = abs
	}
	return f, nil
}

// Sheet is the read-only set of styles for one render.
type Sheet struct {
	fonts     FontSet
	linkColor string
	styles    map[string]Style
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLinkColor sets the hyperlink colour.
func WithLinkColor(color string) Option {
	return func(s *Sheet) {
		if color != "" {
			s.linkColor = color
		}
	}
}

// NewSheet registers the font family and returns the default CV styles.
// Returns ErrFontNotFound if any of the three font files is missing.
func NewSheet(fonts FontSet, opts ...Option) (*Sheet, error) {
	resolved, err := fonts.resolve()
	if err != nil {
		return nil, err
	}

	s := &Sheet{
		fonts:     resolved,
		linkColor: DefaultLinkColor,
		styles:    defaultStyles(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fonts returns the registered font set with absolute paths.
func (s *Sheet) Fonts() FontSet {
	return s.fonts
}

// LinkColor returns the hyperlink colour.
func (s *Sheet) LinkColor() string {
	return s.linkColor
}

// Style returns the named style.
func (s *Sheet) Style(name string) (Style, error) {
	st, ok := s.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return st, nil
}

// Has reports whether the sheet defines name.
func (s *Sheet) Has(name string) bool {
	_, ok := s.styles[name]
	return ok
}

// Names returns the style names in sorted order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.styles))
	for n := range s.styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Base paragraph metrics the CV styles derive from.
const (
	normalSize    = 10.0
	normalLeading = 12.0
	h1Leading     = 22.0
	h2Leading     = 18.0
	footerGrey    = "#808080"
)

// defaultStyles returns the CV styles. Headings inherit the leading of the
// heading level they derive from unless they set their own.
func defaultStyles() map[string]Style {
	body := Style{Name: Body, FontSize: 9, Leading: 11, SpaceAfter: 4}

	bodyBold := body
	bodyBold.Name = BodyBold
	bodyBold.Bold = true

	footer := body
	footer.Name = Footer
	footer.FontSize = 7
	footer.SpaceAfter = 0
	footer.Color = footerGrey

	list := []Style{
		{Name: Name, Bold: true, FontSize: 18, Leading: h1Leading, SpaceAfter: 3},
		{Name: JobTitle, Bold: true, FontSize: 13, Leading: h2Leading, SpaceBefore: 6, SpaceAfter: 12},
		{Name: Page1Section, Bold: true, FontSize: 12, Leading: 14, SpaceBefore: 18, SpaceAfter: 12},
		body,
		bodyBold,
		{Name: ExperienceHeader, Bold: true, FontSize: 11, Leading: 13, SpaceAfter: 2},
		{Name: ExperienceMeta, FontSize: 9, Leading: 10, SpaceAfter: 9},
		{Name: ExperienceSection, Bold: true, FontSize: 9, Leading: 13, SpaceBefore: 6},
		footer,
		{Name: OtherSection, Bold: true, FontSize: 12, Leading: 14, SpaceBefore: 12, SpaceAfter: 6},
	}

	styles := make(map[string]Style, len(list))
	for _, st := range list {
		styles[st.Name] = st
	}
	return styles
}
