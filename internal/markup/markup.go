// Package markup expands the inline markup used in CV text fields.
//
// Three directives are recognised:
//
//	**text**         bold
//	__text__         italic
//	[label](target)  hyperlink; an empty target links to the label
//
// Expansion is a single left-to-right pass. The body of a directive is scanned
// recursively, so directives nest, but markup produced by an expansion is never
// scanned again. A directive body cannot be empty and cannot span a newline.
// Unbalanced delimiters are kept as literal text; there is no escape syntax.
package markup

import (
	"html"
	"strings"
)

// Kind identifies the type of a Span.
type Kind int

// Span kinds.
const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindLink
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindLink:
		return "link"
	}
	return "unknown"
}

// Span is one node of an expanded fragment.
// Text is set for KindText only, Target for KindLink only.
type Span struct {
	Kind     Kind
	Text     string
	Target   string
	Children []Span
}

// Text returns a plain text span.
func Text(s string) Span {
	return Span{Kind: KindText, Text: s}
}

// Bold returns a bold span wrapping children.
func Bold(children ...Span) Span {
	return Span{Kind: KindBold, Children: children}
}

// Italic returns an italic span wrapping children.
func Italic(children ...Span) Span {
	return Span{Kind: KindItalic, Children: children}
}

// Link returns a hyperlink span to target with children as visible label.
func Link(target string, children ...Span) Span {
	return Span{Kind: KindLink, Target: target, Children: children}
}

// Fragment is styled text: plain text interleaved with bold, italic and link spans.
type Fragment struct {
	Spans []Span
}

// Expand scans s once and returns the styled fragment.
func Expand(s string) Fragment {
	return Fragment{Spans: scan(s)}
}

// PlainText returns the visible text without styling.
func (f Fragment) PlainText() string {
	var b strings.Builder
	writePlain(&b, f.Spans)
	return b.String()
}

// HTML renders the fragment as inline HTML. Text is emitted verbatim so that
// entities and inline tags in the source keep working; link targets are escaped.
// Links are coloured with linkColor unless it is empty.
func (f Fragment) HTML(linkColor string) string {
	var b strings.Builder
	writeHTML(&b, f.Spans, linkColor)
	return b.String()
}

func writePlain(b *strings.Builder, spans []Span) {
	for _, s := range spans {
		if s.Kind == KindText {
			b.WriteString(s.Text)
			continue
		}
		writePlain(b, s.Children)
	}
}

func writeHTML(b *strings.Builder, spans []Span, linkColor string) {
	for _, s := range spans {
		switch s.Kind {
		case KindText:
			b.WriteString(s.Text)
		case KindBold:
			b.WriteString("<b>")
			writeHTML(b, s.Children, linkColor)
			b.WriteString("</b>")
		case KindItalic:
			b.WriteString("<i>")
			writeHTML(b, s.Children, linkColor)
			b.WriteString("</i>")
		case KindLink:
			b.WriteString(`<a href="`)
			b.WriteString(html.EscapeString(s.Target))
			b.WriteString(`"`)
			if linkColor != "" {
				b.WriteString(` style="color: `)
				b.WriteString(html.EscapeString(linkColor))
				b.WriteString(`"`)
			}
			b.WriteString(">")
			writeHTML(b, s.Children, linkColor)
			b.WriteString("</a>")
		}
	}
}
