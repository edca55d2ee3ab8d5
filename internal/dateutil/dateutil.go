// Package dateutil formats the version date printed in the CV footer.
//
// Formats are written with tokens (YYYY, YY, MMMM, MMM, MM, M, DD, D) rather
// than Go reference layouts. Text in brackets is kept literally.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat renders dates as "19 October 2026".
const DefaultDateFormat = "DD MMMM YYYY"

// autoPrefix marks a date value computed at render time.
const autoPrefix = "auto"

// dateTokens maps format tokens to Go layout components, longest first.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets are named shortcuts for common formats.
var DatePresets = map[string]string{
	"cv":       DefaultDateFormat,
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a token format to a Go time layout. A preset name
// is accepted in place of a format.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	var layout strings.Builder
	layout.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(&layout, format[i:])
		if n == 0 {
			layout.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return layout.String(), nil
}

// matchToken writes the layout of the token at the start of s and returns its
// length, or 0 when s starts with no token.
func matchToken(layout *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			layout.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// Format renders t in UTC with a token format or preset name.
func Format(format string, t time.Time) (string, error) {
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(layout), nil
}

// ResolveDate turns a configured footer date into the printed text.
//   - "" or "auto": t in DefaultDateFormat
//   - "auto:FORMAT" or "auto:preset": t in that format
//   - anything else: returned unchanged
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)

	switch {
	case value == "" || lower == autoPrefix:
		return Format(DefaultDateFormat, t)
	case !strings.HasPrefix(lower, autoPrefix):
		return value, nil
	case !strings.HasPrefix(lower, autoPrefix+":"):
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	format := value[len(autoPrefix)+1:]
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	return Format(format, t)
}
