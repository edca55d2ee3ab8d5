package cvdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// DefaultPath is the data file used when none is given.
const DefaultPath = "cv.json"

// Extensions lists the accepted data file extensions.
var Extensions = []string{".json", ".yaml", ".yml"}

// rawCV mirrors CV with mapping fields left as ordered maps.
type rawCV struct {
	Name             string            `yaml:"name"`
	Title            string            `yaml:"title"`
	Basics           rawBasics         `yaml:"basics"`
	Summary          []string          `yaml:"summary"`
	Strengths        []string          `yaml:"strengths"`
	Expertise        yamlutil.MapSlice `yaml:"expertise"`
	Achievements     []string          `yaml:"achievements"`
	Experiences      []rawExperience   `yaml:"experiences"`
	PersonalProjects []Entry           `yaml:"personal_projects"`
	Volunteering     []Entry           `yaml:"volunteering"`
	Interests        string            `yaml:"interests"`
	Footer           string            `yaml:"footer"`
}

type rawBasics struct {
	Left         yamlutil.MapSlice `yaml:"left"`
	Right        yamlutil.MapSlice `yaml:"right"`
	RedactedNote string            `yaml:"redacted_note"`
}

type rawExperience struct {
	Company    string            `yaml:"company"`
	Role       string            `yaml:"role"`
	Department string            `yaml:"department"`
	Dates      string            `yaml:"dates"`
	Meta       yamlutil.MapSlice `yaml:"meta"`
	Context    []string          `yaml:"context"`
	Tasks      []string          `yaml:"tasks"`
}

// Load reads, parses and validates the data file at path.
func Load(path string) (*CV, error) {
	if !supportedExt(path) {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, filepath.Ext(path), strings.Join(Extensions, ", "))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user-supplied data file
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadData, err)
	}

	return Parse(data)
}

// Parse decodes YAML or JSON data and validates the result.
// Every problem is reported at once in a *ValidationError.
func Parse(data []byte) (*CV, error) {
	var raw rawCV
	if err := yamlutil.Decode(data, &raw, yamlutil.Ordered()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseData, err)
	}

	report := &ValidationError{}
	cv := raw.convert(report)
	validateStruct(cv, report)

	if err := report.orNil(); err != nil {
		return nil, err
	}
	return cv, nil
}

func supportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// convert builds the CV, recording shape problems of mapping fields in report.
func (r *rawCV) convert(report *ValidationError) *CV {
	cv := &CV{
		Name:  r.Name,
		Title: r.Title,
		Basics: Basics{
			Left:         toInfoMap(r.Basics.Left, "basics.left", report),
			Right:        toInfoMap(r.Basics.Right, "basics.right", report),
			RedactedNote: r.Basics.RedactedNote,
		},
		Summary:          r.Summary,
		Strengths:        r.Strengths,
		Expertise:        toCategories(r.Expertise, report),
		Achievements:     r.Achievements,
		PersonalProjects: r.PersonalProjects,
		Volunteering:     r.Volunteering,
		Interests:        r.Interests,
		Footer:           r.Footer,
	}

	if r.Experiences != nil {
		cv.Experiences = make([]Experience, len(r.Experiences))
	}
	for i, e := range r.Experiences {
		cv.Experiences[i] = Experience{
			Company:    e.Company,
			Role:       e.Role,
			Department: e.Department,
			Dates:      e.Dates,
			Meta:       toMeta(e.Meta, fmt.Sprintf("experiences[%d].meta", i), report),
			Context:    e.Context,
			Tasks:      e.Tasks,
		}
	}

	return cv
}

func toInfoMap(ms yamlutil.MapSlice, field string, report *ValidationError) InfoMap {
	if ms == nil {
		return nil
	}
	out := make(InfoMap, 0, len(ms))
	for _, item := range ms {
		label := fmt.Sprint(item.Key)
		path := field + "." + label

		if sub, ok := item.Value.(yamlutil.MapSlice); ok {
			nested := toInfoMap(sub, path, report)
			if nested == nil {
				nested = InfoMap{}
			}
			out = append(out, InfoItem{Label: label, Sub: nested})
			continue
		}

		value, ok := scalar(item.Value)
		if !ok {
			report.add(path, "must be text or a mapping")
			continue
		}
		out = append(out, InfoItem{Label: label, Value: value})
	}
	return out
}

func toCategories(ms yamlutil.MapSlice, report *ValidationError) []Category {
	out := make([]Category, 0, len(ms))
	for _, item := range ms {
		name := fmt.Sprint(item.Key)
		lines, ok := scalarList(item.Value)
		if !ok {
			report.add("expertise."+name, "must be a list of lines")
			continue
		}
		out = append(out, Category{Name: name, Lines: lines})
	}
	return out
}

func toMeta(ms yamlutil.MapSlice, field string, report *ValidationError) []MetaItem {
	if len(ms) == 0 {
		return nil
	}
	out := make([]MetaItem, 0, len(ms))
	for _, item := range ms {
		label := fmt.Sprint(item.Key)
		if value, ok := scalar(item.Value); ok {
			out = append(out, MetaItem{Label: label, Value: value})
			continue
		}
		if values, ok := scalarList(item.Value); ok {
			out = append(out, MetaItem{Label: label, Value: strings.Join(values, ", ")})
			continue
		}
		report.add(field+"."+label, "must be text or a list of text")
	}
	return out
}

// scalar formats a decoded scalar. Numbers and booleans keep their source spelling
// as far as the decoder allows.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case yamlutil.MapSlice, []any, map[string]any:
		return "", false
	default:
		return fmt.Sprint(x), true
	}
}

func scalarList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := scalar(it)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
