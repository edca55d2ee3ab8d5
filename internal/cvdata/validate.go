package cvdata

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator. Field names in reports use the
// yaml keys of the data file rather than Go field names.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateStruct appends every struct tag violation of cv to report.
func validateStruct(cv *CV, report *ValidationError) {
	err := structValidator().Struct(cv)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		report.add("document", "%v", err)
		return
	}
	for _, fe := range verrs {
		report.add(fieldPath(fe.Namespace()), "%s", message(fe))
	}
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	}
	return "failed " + fe.Tag() + " check"
}

// CheckRedactable reports whether the CV carries the note shown in place of
// redacted values.
func (cv *CV) CheckRedactable() error {
	report := &ValidationError{}
	if strings.TrimSpace(cv.Basics.RedactedNote) == "" {
		report.add("basics.redacted_note", "is required for a redacted render")
	}
	return report.orNil()
}
