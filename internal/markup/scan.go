package markup

import "strings"

// Directive delimiters.
const (
	boldDelim   = "**"
	italicDelim = "__"
	labelOpen   = "["
	labelClose  = "]("
	targetClose = ")"
)

// scan parses s into spans. Adjacent literal bytes are merged into one text span.
func scan(s string) []Span {
	var spans []Span
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, Text(text.String()))
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		if span, end, ok := directiveAt(s, i); ok {
			flush()
			spans = append(spans, span)
			i = end
			continue
		}
		text.WriteByte(s[i])
		i++
	}
	flush()

	return spans
}

// directiveAt tries every directive at position i and returns the span and
// the index just past it.
func directiveAt(s string, i int) (Span, int, bool) {
	switch s[i] {
	case '*':
		if body, end, ok := delimited(s, i, boldDelim); ok {
			return Bold(scan(body)...), end, true
		}
	case '_':
		if body, end, ok := delimited(s, i, italicDelim); ok {
			return Italic(scan(body)...), end, true
		}
	case '[':
		if label, target, end, ok := link(s, i); ok {
			children := scan(label)
			if target == "" {
				target = Fragment{Spans: children}.PlainText()
			}
			return Link(target, children...), end, true
		}
	}
	return Span{}, 0, false
}

// delimited matches delim + body + delim at i. The body holds at least one
// byte, ends at the first closing delimiter and contains no newline.
func delimited(s string, i int, delim string) (body string, end int, ok bool) {
	if !strings.HasPrefix(s[i:], delim) {
		return "", 0, false
	}
	start := i + len(delim)
	if start >= len(s) {
		return "", 0, false
	}
	idx := strings.Index(s[start+1:], delim)
	if idx < 0 {
		return "", 0, false
	}
	closeAt := start + 1 + idx
	body = s[start:closeAt]
	if strings.Contains(body, "\n") {
		return "", 0, false
	}
	return body, closeAt + len(delim), true
}

// link matches [label](target) at i. The label is non-empty and stops at the
// first "](" that is followed by a closing parenthesis on the same line. The
// target may be empty.
func link(s string, i int) (label, target string, end int, ok bool) {
	if !strings.HasPrefix(s[i:], labelOpen) {
		return "", "", 0, false
	}
	start := i + len(labelOpen)

	for from := start + 1; from < len(s); {
		idx := strings.Index(s[from:], labelClose)
		if idx < 0 {
			return "", "", 0, false
		}
		mid := from + idx
		label = s[start:mid]
		if strings.Contains(label, "\n") {
			return "", "", 0, false
		}

		targetStart := mid + len(labelClose)
		if tIdx := strings.Index(s[targetStart:], targetClose); tIdx >= 0 {
			target = s[targetStart : targetStart+tIdx]
			if !strings.Contains(target, "\n") {
				return label, target, targetStart + tIdx + len(targetClose), true
			}
		}
		from = mid + 1
	}
	return "", "", 0, false
}
