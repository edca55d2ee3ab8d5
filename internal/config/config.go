package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 100 // font family, asset names, output base name
	MaxLabelLength    = 100 // footer version label, redacted suffix
	MaxColorLength    = 50  // CSS colour
	MaxDateLength     = 60  // "auto:FORMAT" or literal date
	MaxPageSizeLength = 10  // "a4", "letter", "legal"
	MaxSectionLength  = 50
)

// Limits on numeric settings.
const (
	MaxMarginCm         = 10.0
	MaxExpertiseColumns = 4
	MaxGap              = 72.0 // points
)

// AppDirName is the directory under the user config directory searched for
// named configs.
const AppDirName = "go-cv2pdf"

// Config holds all settings of a CV render. Zero values mean defaults.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Output OutputConfig `yaml:"output"`
	Page   PageConfig   `yaml:"page"`
	Fonts  FontsConfig  `yaml:"fonts"`
	Style  StyleConfig  `yaml:"style"`
	Footer FooterConfig `yaml:"footer"`
	Layout LayoutConfig `yaml:"layout"`
	Assets AssetsConfig `yaml:"assets"`
	Pages  []PageLayout `yaml:"pages"` // empty = built-in three-page policy
}

// DataConfig locates the CV data file.
type DataConfig struct {
	Path string `yaml:"path"` // empty = cv.json
}

// OutputConfig defines the PDF file name and location.
type OutputConfig struct {
	Dir            string `yaml:"dir"`            // empty = current directory
	BaseName       string `yaml:"baseName"`       // empty = "CV <name>"
	RedactedSuffix string `yaml:"redactedSuffix"` // empty = " - Redacted"
}

// PageConfig defines page geometry.
type PageConfig struct {
	Size    string        `yaml:"size"` // "a4", "letter", "legal" (default: "a4")
	Margins MarginsConfig `yaml:"margins"`
}

// MarginsConfig holds page margins in centimetres. Zero keeps the default.
type MarginsConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// FontsConfig selects the font family. Explicit files override the
// <dir>/<Family>-Regular|Bold|Italic.ttf convention.
type FontsConfig struct {
	Family  string `yaml:"family"` // default "Lato"
	Dir     string `yaml:"dir"`    // default "fonts"
	Regular string `yaml:"regular"`
	Bold    string `yaml:"bold"`
	Italic  string `yaml:"italic"`
}

// StyleConfig tunes the style sheet.
type StyleConfig struct {
	LinkColor string `yaml:"linkColor"` // default "royalblue"
}

// FooterConfig tunes the per-page footer.
type FooterConfig struct {
	Date         string `yaml:"date"`         // "auto", "auto:FORMAT" or literal (default: "auto")
	VersionLabel string `yaml:"versionLabel"` // default "CV Version"
}

// LayoutConfig tunes block assembly.
type LayoutConfig struct {
	ShowGrid         bool `yaml:"showGrid"`
	ExpertiseColumns int  `yaml:"expertiseColumns"` // default 2
}

// AssetsConfig selects the base CSS and HTML templates.
type AssetsConfig struct {
	Dir         string `yaml:"dir"`         // empty = embedded assets only
	Style       string `yaml:"style"`       // default "default"
	TemplateSet string `yaml:"templateSet"` // default "default"
}

// PageLayout is one page of a custom page policy.
type PageLayout struct {
	Sections []string `yaml:"sections"`
	Entries  []int    `yaml:"entries"` // explicit experience indices, overrides take
	Take     int      `yaml:"take"`    // experiences taken from the cursor, 0 = all remaining
	Wide     bool     `yaml:"wide"`
	Gap      float64  `yaml:"gap"` // points between experience entries
}

// Validate checks field lengths and numeric ranges. Called by LoadConfig, but
// available to callers who build a Config by hand.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"data.path", c.Data.Path, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.baseName", c.Output.BaseName, MaxNameLength},
		{"output.redactedSuffix", c.Output.RedactedSuffix, MaxLabelLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"fonts.family", c.Fonts.Family, MaxNameLength},
		{"fonts.dir", c.Fonts.Dir, MaxPathLength},
		{"fonts.regular", c.Fonts.Regular, MaxPathLength},
		{"fonts.bold", c.Fonts.Bold, MaxPathLength},
		{"fonts.italic", c.Fonts.Italic, MaxPathLength},
		{"style.linkColor", c.Style.LinkColor, MaxColorLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"footer.versionLabel", c.Footer.VersionLabel, MaxLabelLength},
		{"assets.dir", c.Assets.Dir, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxNameLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	// Catches malformed "auto:FORMAT" values before any rendering starts.
	if _, err := dateutil.ResolveDate(c.Footer.Date, time.Time{}); err != nil {
		return fmt.Errorf("%w: footer.date: %v", ErrInvalidValue, err)
	}

	if strings.ContainsAny(c.Output.BaseName, `/\`) {
		return fmt.Errorf("%w: output.baseName must not contain path separators", ErrInvalidValue)
	}

	margins := []struct {
		name  string
		value float64
	}{
		{"page.margins.top", c.Page.Margins.Top},
		{"page.margins.right", c.Page.Margins.Right},
		{"page.margins.bottom", c.Page.Margins.Bottom},
		{"page.margins.left", c.Page.Margins.Left},
	}
	for _, m := range margins {
		if m.value < 0 || m.value > MaxMarginCm {
			return fmt.Errorf("%w: %s must be between 0 and %.0f cm, got %.2f", ErrInvalidValue, m.name, MaxMarginCm, m.value)
		}
	}

	if n := c.Layout.ExpertiseColumns; n < 0 || n > MaxExpertiseColumns {
		return fmt.Errorf("%w: layout.expertiseColumns must be between 1 and %d, got %d", ErrInvalidValue, MaxExpertiseColumns, n)
	}

	for i, p := range c.Pages {
		if err := p.validate(i); err != nil {
			return err
		}
	}

	return nil
}

func (p PageLayout) validate(i int) error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("%w: pages[%d].sections is empty", ErrInvalidValue, i)
	}
	for j, s := range p.Sections {
		if err := validateFieldLength(fmt.Sprintf("pages[%d].sections[%d]", i, j), s, MaxSectionLength); err != nil {
			return err
		}
	}
	if p.Take < 0 {
		return fmt.Errorf("%w: pages[%d].take must not be negative, got %d", ErrInvalidValue, i, p.Take)
	}
	if p.Gap < 0 || p.Gap > MaxGap {
		return fmt.Errorf("%w: pages[%d].gap must be between 0 and %.0f, got %.2f", ErrInvalidValue, i, MaxGap, p.Gap)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a config where every setting takes its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; otherwise it is a name
// searched in ./ and the user config directory. There is no silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the files tried for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
