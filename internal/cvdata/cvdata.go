// Package cvdata defines the CV document read from a YAML or JSON data file.
//
// The document is loaded once, validated right after decoding and treated as
// read-only afterwards. Mapping fields (info tables, expertise, experience
// metadata) keep the key order of the source file.
package cvdata

import "strings"

// CV is the root document.
type CV struct {
	Name             string       `yaml:"name" validate:"required"`
	Title            string       `yaml:"title" validate:"required"`
	Basics           Basics       `yaml:"basics"`
	Summary          []string     `yaml:"summary"`
	Strengths        []string     `yaml:"strengths"`
	Expertise        []Category   `yaml:"expertise"`
	Achievements     []string     `yaml:"achievements"`
	Experiences      []Experience `yaml:"experiences" validate:"required,min=1,dive"`
	PersonalProjects []Entry      `yaml:"personal_projects" validate:"dive"`
	Volunteering     []Entry      `yaml:"volunteering" validate:"dive"`
	Interests        string       `yaml:"interests"`
	Footer           string       `yaml:"footer" validate:"required"`
}

// Basics holds the two info tables shown under the name.
// Left carries personal identifiers, Right carries contact channels.
type Basics struct {
	Left         InfoMap `yaml:"left" validate:"required,min=1"`
	Right        InfoMap `yaml:"right" validate:"required,min=1"`
	RedactedNote string  `yaml:"redacted_note"`
}

// InfoMap is an ordered label -> value mapping.
type InfoMap []InfoItem

// InfoItem is one row of an info table. A mapping value is held in Sub and
// renders as a nested two-column table; otherwise Value holds the text.
type InfoItem struct {
	Label string
	Value string
	Sub   InfoMap
}

// String flattens the mapping to "label: value" pairs separated by commas.
func (m InfoMap) String() string {
	parts := make([]string, len(m))
	for i, item := range m {
		value := item.Value
		if item.IsMapping() {
			value = "(" + item.Sub.String() + ")"
		}
		parts[i] = item.Label + ": " + value
	}
	return strings.Join(parts, ", ")
}

// IsMapping reports whether the item holds a nested mapping.
func (i InfoItem) IsMapping() bool {
	return i.Sub != nil
}

// Category is one expertise group and its skill lines, in input order.
type Category struct {
	Name  string
	Lines []string
}

// Experience is one employment period.
type Experience struct {
	Company    string     `yaml:"company" validate:"required"`
	Role       string     `yaml:"role" validate:"required"`
	Department string     `yaml:"department"`
	Dates      string     `yaml:"dates" validate:"required"`
	Meta       []MetaItem `yaml:"meta"`
	Context    []string   `yaml:"context"`
	Tasks      []string   `yaml:"tasks"`
}

// MetaItem is one label/value pair of an experience metadata line.
// List values are already comma-joined.
type MetaItem struct {
	Label string
	Value string
}

// Entry is a personal project or volunteering item.
type Entry struct {
	Title   string `yaml:"title" validate:"required"`
	Dates   string `yaml:"dates"`
	Summary string `yaml:"summary"`
}
