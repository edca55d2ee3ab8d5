package cvdata

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for CV data loading.
var (
	ErrReadData          = errors.New("failed to read CV data")
	ErrParseData         = errors.New("failed to parse CV data")
	ErrInvalidData       = errors.New("invalid CV data")
	ErrUnsupportedFormat = errors.New("unsupported CV data format")
)

// FieldError is one problem found in the CV data.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in one document.
// It matches ErrInvalidData with errors.Is.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidData.Error())
	sb.WriteString(":")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidData
}

// add records a problem at field.
func (e *ValidationError) add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// orNil returns e when it holds at least one problem.
func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
