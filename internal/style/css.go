package style

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ClassName returns the CSS class used for paragraphs set in style name.
func ClassName(name string) string {
	return "st-" + name
}

// FontStack returns the CSS font-family value for the registered family.
func (s *Sheet) FontStack() string {
	return fmt.Sprintf("%q, sans-serif", s.fonts.Family)
}

// Declarations returns the CSS declarations for st, usable inline.
func (st Style) Declarations() string {
	var b strings.Builder
	fmt.Fprintf(&b, "font-size: %spt; ", pt(st.FontSize))
	if st.Leading > 0 {
		fmt.Fprintf(&b, "line-height: %spt; ", pt(st.Leading))
	}
	if st.Bold {
		b.WriteString("font-weight: bold; ")
	} else {
		b.WriteString("font-weight: normal; ")
	}
	if st.Italic {
		b.WriteString("font-style: italic; ")
	}
	fmt.Fprintf(&b, "padding-top: %spt; padding-bottom: %spt; ", pt(st.SpaceBefore), pt(st.SpaceAfter))
	fmt.Fprintf(&b, "text-align: %s;", st.Align.CSS())
	if st.Color != "" {
		fmt.Fprintf(&b, " color: %s;", st.Color)
	}
	return b.String()
}

// CSS returns the stylesheet: one @font-face per font file, body defaults and
// one class per named style. Space before/after is expressed as padding so that
// it adds up between paragraphs instead of collapsing.
func (s *Sheet) CSS() string {
	var b strings.Builder

	faces := []struct {
		path   string
		weight string
		style  string
	}{
		{s.fonts.Regular, "normal", "normal"},
		{s.fonts.Bold, "bold", "normal"},
		{s.fonts.Italic, "normal", "italic"},
	}
	for _, f := range faces {
		fmt.Fprintf(&b, "@font-face {\n  font-family: %q;\n  src: url(%q);\n  font-weight: %s;\n  font-style: %s;\n}\n",
			s.fonts.Family, fileURL(f.path), f.weight, f.style)
	}

	fmt.Fprintf(&b, "body {\n  font-family: %s;\n  font-size: %spt;\n  line-height: %spt;\n}\n",
		s.FontStack(), pt(normalSize), pt(normalLeading))
	fmt.Fprintf(&b, "a {\n  color: %s;\n  text-decoration: none;\n}\n", s.linkColor)

	for _, name := range s.Names() {
		st := s.styles[name]
		fmt.Fprintf(&b, "p.%s {\n  %s\n}\n", ClassName(name), st.Declarations())
	}

	return b.String()
}

// fileURL turns an absolute path into a file:// URL with proper escaping.
func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}

// pt formats a point size rounded to two decimals, without trailing zeros.
func pt(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
