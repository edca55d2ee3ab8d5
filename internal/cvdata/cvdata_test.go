package cvdata

// Notes:
// - Order of mapping fields is asserted on both testdata files since JSON and
//   YAML go through the same ordered decoder.
// - Validation tests assert the full list of reported fields: every problem
//   must be reported at once.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestLoad - Reading data files
// ---------------------------------------------------------------------------

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	cv, err := Load(filepath.Join("testdata", "cv.yaml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cv.Name != "Jane Doe" || cv.Title != "Staff Software Engineer" {
		t.Errorf("identity = %q / %q", cv.Name, cv.Title)
	}

	wantLeft := InfoMap{
		{Label: "Nationality", Value: "Belgian"},
		{Label: "Born", Value: "1985"},
		{Label: "Languages", Sub: InfoMap{
			{Label: "French", Value: "Native"},
			{Label: "English", Value: "Fluent"},
			{Label: "Dutch", Value: "Intermediate"},
		}},
	}
	if diff := cmp.Diff(wantLeft, cv.Basics.Left); diff != "" {
		t.Errorf("Basics.Left mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, c := range cv.Expertise {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ","); got != "Languages,Infrastructure,Data,Practices" {
		t.Errorf("expertise order = %s", got)
	}

	wantMeta := []MetaItem{
		{Label: "Team size", Value: "5"},
		{Label: "Stack", Value: "Go, SQL"},
	}
	if diff := cmp.Diff(wantMeta, cv.Experiences[0].Meta); diff != "" {
		t.Errorf("Experiences[0].Meta mismatch (-want +got):\n%s", diff)
	}
	if cv.Experiences[0].Department != "Platform" {
		t.Errorf("Department = %q, want Platform", cv.Experiences[0].Department)
	}
	if cv.Experiences[1].Meta != nil {
		t.Errorf("Experiences[1].Meta = %v, want nil", cv.Experiences[1].Meta)
	}
	if err := cv.CheckRedactable(); err != nil {
		t.Errorf("CheckRedactable() unexpected error: %v", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	cv, err := Load(filepath.Join("testdata", "cv.json"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if len(cv.Strengths) != 0 {
		t.Errorf("Strengths = %v, want empty", cv.Strengths)
	}
	if !cv.Basics.Left[1].IsMapping() {
		t.Error("Languages should be a mapping")
	}
	if got := cv.Experiences[0].Meta[1].Value; got != "Go, SQL" {
		t.Errorf("Stack meta = %q, want %q", got, "Go, SQL")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("name: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"unsupported extension", filepath.Join(dir, "cv.toml"), ErrUnsupportedFormat},
		{"missing file", filepath.Join(dir, "missing.json"), ErrReadData},
		{"malformed yaml", bad, ErrParseData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse_Validation - Missing and malformed fields
// ---------------------------------------------------------------------------

func TestParse_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       string
		wantFields []string
	}{
		{
			name:       "empty document",
			data:       "interests: none",
			wantFields: []string{"name", "title", "basics.left", "basics.right", "experiences", "footer"},
		},
		{
			name: "experience fields",
			data: `
name: A
title: B
footer: C
basics: {left: {Born: 1990}, right: {Email: a@b.c}}
experiences:
  - company: Acme
  - role: Dev
    dates: "2020"
`,
			wantFields: []string{
				"experiences[0].role",
				"experiences[0].dates",
				"experiences[1].company",
			},
		},
		{
			name: "malformed mappings",
			data: `
name: A
title: B
footer: C
basics:
  left: {Nationality: Belgian, Born: [1, 2]}
  right: {Email: a@b.c}
expertise:
  Go: not a list
experiences:
  - company: Acme
    role: Dev
    dates: "2020"
    meta:
      Stack: {Go: yes}
personal_projects:
  - dates: "2021"
`,
			wantFields: []string{
				"basics.left.Born",
				"expertise.Go",
				"experiences[0].meta.Stack",
				"personal_projects[0].title",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidData) {
				t.Fatalf("Parse() error = %v, want %v", err, ErrInvalidData)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse() error type = %T, want *ValidationError", err)
			}

			var got []string
			for _, fe := range verr.Errors {
				got = append(got, fe.Field)
			}
			if diff := cmp.Diff(tt.wantFields, got); diff != "" {
				t.Errorf("reported fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "experiences", Message: "must have at least 1 item(s)"},
	}}
	want := "invalid CV data:\n  1. name: is required\n  2. experiences: must have at least 1 item(s)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCV_CheckRedactable(t *testing.T) {
	t.Parallel()

	cv := &CV{Basics: Basics{RedactedNote: "  "}}
	err := cv.CheckRedactable()
	if !errors.Is(err, ErrInvalidData) {
		t.Fatalf("CheckRedactable() error = %v, want %v", err, ErrInvalidData)
	}
	if !strings.Contains(err.Error(), "basics.redacted_note") {
		t.Errorf("error should name the field, got %q", err)
	}
}
