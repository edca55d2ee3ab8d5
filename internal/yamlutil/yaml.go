// Package yamlutil decodes config and CV data documents.
//
// JSON documents are valid input: the parser treats them as flow-style YAML,
// so one decoder serves .json, .yaml and .yml files.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits input documents (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrDecode         = errors.New("yamlutil: decode failed")
)

// MapSlice is an ordered mapping. Decoding into a MapSlice keeps the key
// order of the source document.
type MapSlice = yaml.MapSlice

// MapItem is one key/value pair of a MapSlice.
type MapItem = yaml.MapItem

// Option tunes Decode.
type Option func(*decodeOptions)

type decodeOptions struct {
	strict  bool
	ordered bool
}

// Strict rejects keys that match no struct field. Used for config files,
// where a misspelt key would otherwise be silently ignored.
func Strict() Option {
	return func(o *decodeOptions) { o.strict = true }
}

// Ordered decodes every untyped mapping as a MapSlice, so nested mappings
// keep their source order too. Used for CV data, where order is layout.
func Ordered() Option {
	return func(o *decodeOptions) { o.ordered = true }
}

// Decode parses data into v. Syntax errors carry the line and column with
// the offending source line.
func Decode(data []byte, v any, opts ...Option) error {
	switch {
	case len(data) == 0:
		return ErrEmptyInput
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}

	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var yopts []yaml.DecodeOption
	if o.strict {
		yopts = append(yopts, yaml.Strict())
	}
	if o.ordered {
		yopts = append(yopts, yaml.UseOrderedMap())
	}

	if err := yaml.UnmarshalWithOptions(data, v, yopts...); err != nil {
		return fmt.Errorf("%w:\n%s", ErrDecode, yaml.FormatError(err, false, true))
	}
	return nil
}
