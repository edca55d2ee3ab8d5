package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/assets"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
	"github.com/alnah/go-cv2pdf/internal/hints"
	"github.com/alnah/go-cv2pdf/internal/logfields"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// Sentinel errors for CLI operations.
var (
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrWriteHTML      = errors.New("failed to write HTML file")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrTooManyArgs    = errors.New("too many arguments")
)

// Defaults applied when neither flags, environment nor config set a value.
const (
	defaultDataPath = "cv.json"
	defaultFontsDir = "fonts"
	pdfExt          = ".pdf"
	htmlExt         = ".html"
)

// runRender loads the config and the CV data, renders the PDF and writes it.
func runRender(ctx context.Context, positional []string, flags *renderFlags, env *Environment, logger *slog.Logger) error {
	start := env.Now()

	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one data file, got %d", ErrTooManyArgs, len(positional))
	}
	if len(positional) == 1 && flags.data == "" {
		flags.data = positional[0]
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg, logger)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	dataPath := resolveDataPath(cfg)
	cv, err := cvdata.Load(dataPath)
	if err != nil {
		return fmt.Errorf("loading CV data: %w%s", err, dataHint(err, dataPath))
	}
	logger.Debug("CV data loaded", logfields.Path(dataPath), logfields.Since(start))

	sheet, err := buildSheet(cfg)
	if err != nil {
		return fmt.Errorf("building style sheet: %w%s", err, fontHint(err, cfg))
	}

	date, err := dateutil.ResolveDate(cfg.Footer.Date, env.Now())
	if err != nil {
		return fmt.Errorf("footer date: %w", err)
	}

	renderer, err := env.NewRenderer(sheet, converterOptions(cfg, timeout, logger)...)
	if err != nil {
		return fmt.Errorf("creating converter: %w%s", err, assetHint(err))
	}
	defer func() {
		if cerr := renderer.Close(); cerr != nil {
			logger.Debug("closing converter", logfields.Error(cerr))
		}
	}()

	result, err := renderer.Render(ctx, cv2pdf.Input{
		CV:       cv,
		Redacted: flags.redacted,
		Page:     buildPageSettings(cfg),
		Policy:   buildPagePolicy(cfg),
		Date:     date,
		HTMLOnly: flags.outputMode.htmlOnly,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w%s", dataPath, err, renderHint(err))
	}

	pdfPath := resolveOutputPath(flags.output, cfg, cv.Name, flags.redacted)
	return writeOutputs(pdfPath, result, flags, env, logger, start)
}

// loadConfig loads the config named by the flag, else by CV2PDF_CONFIG.
// With neither, every setting takes its default.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		hint := ""
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			hint = hints.ForConfigNotFound(config.SearchPaths(name))
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.data != "" {
		cfg.Data.Path = flags.data
	}
	if flags.fontsDir != "" {
		cfg.Fonts.Dir = flags.fontsDir
	}
	if flags.grid {
		cfg.Layout.ShowGrid = true
	}
	if flags.date != "" {
		cfg.Footer.Date = flags.date
	}
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.TemplateSet = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.Dir = flags.assets.assetPath
	}
}

// resolveTimeout returns the flag timeout, else the environment timeout, else
// zero (converter default).
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

func resolveDataPath(cfg *config.Config) string {
	if cfg.Data.Path != "" {
		return cfg.Data.Path
	}
	return defaultDataPath
}

// buildSheet resolves the font files and builds the style sheet.
// Explicit font files override the <dir>/<Family>-<Variant>.ttf convention.
func buildSheet(cfg *config.Config) (*style.Sheet, error) {
	dir := cfg.Fonts.Dir
	if dir == "" {
		dir = defaultFontsDir
	}

	fonts := style.FontSetFromDir(dir, cfg.Fonts.Family)
	if cfg.Fonts.Regular != "" {
		fonts.Regular = cfg.Fonts.Regular
	}
	if cfg.Fonts.Bold != "" {
		fonts.Bold = cfg.Fonts.Bold
	}
	if cfg.Fonts.Italic != "" {
		fonts.Italic = cfg.Fonts.Italic
	}

	return style.NewSheet(fonts, style.WithLinkColor(cfg.Style.LinkColor))
}

// converterOptions maps config values to converter options. Empty values keep
// the converter defaults.
func converterOptions(cfg *config.Config, timeout time.Duration, logger *slog.Logger) []cv2pdf.Option {
	opts := []cv2pdf.Option{
		cv2pdf.WithLogger(logger),
		cv2pdf.WithShowGrid(cfg.Layout.ShowGrid),
		cv2pdf.WithVersionLabel(cfg.Footer.VersionLabel),
		cv2pdf.WithAssetPath(cfg.Assets.Dir),
	}
	if timeout > 0 {
		opts = append(opts, cv2pdf.WithTimeout(timeout))
	}
	if cfg.Assets.Style != "" {
		opts = append(opts, cv2pdf.WithStyle(cfg.Assets.Style))
	}
	if cfg.Assets.TemplateSet != "" {
		opts = append(opts, cv2pdf.WithTemplateSet(cfg.Assets.TemplateSet))
	}
	return opts
}

// buildPageSettings returns the page geometry. Zero margins keep the default.
func buildPageSettings(cfg *config.Config) *cv2pdf.PageSettings {
	page := cv2pdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}

	m := cfg.Page.Margins
	for _, side := range []struct {
		value float64
		dst   *float64
	}{
		{m.Top, &page.Margins.Top},
		{m.Right, &page.Margins.Right},
		{m.Bottom, &page.Margins.Bottom},
		{m.Left, &page.Margins.Left},
	} {
		if side.value != 0 {
			*side.dst = side.value
		}
	}
	return page
}

// buildPagePolicy returns the configured page policy, or nil for the built-in
// one when neither pages nor expertise columns are configured.
func buildPagePolicy(cfg *config.Config) *cv2pdf.PagePolicy {
	if len(cfg.Pages) == 0 && cfg.Layout.ExpertiseColumns == 0 {
		return nil
	}

	policy := cv2pdf.DefaultPagePolicy()
	if len(cfg.Pages) > 0 {
		policy.Pages = make([]cv2pdf.PageLayout, len(cfg.Pages))
		for i, p := range cfg.Pages {
			policy.Pages[i] = cv2pdf.PageLayout{
				Sections: p.Sections,
				Entries:  p.Entries,
				Take:     p.Take,
				Wide:     p.Wide,
				Gap:      p.Gap,
			}
		}
	}
	if cfg.Layout.ExpertiseColumns != 0 {
		policy.ExpertiseColumns = cfg.Layout.ExpertiseColumns
	}
	return policy
}

// resolveOutputPath returns the PDF path. An --output ending in .pdf is used
// as is; any other value is a directory, as is output.dir in config.
func resolveOutputPath(flagOutput string, cfg *config.Config, name string, redacted bool) string {
	if strings.EqualFold(filepath.Ext(flagOutput), pdfExt) {
		return flagOutput
	}

	dir := cfg.Output.Dir
	if flagOutput != "" {
		dir = flagOutput
	}
	file := cv2pdf.OutputFileName(name, cfg.Output.BaseName, cfg.Output.RedactedSuffix, redacted)
	return filepath.Join(dir, file)
}

// writeOutputs writes the PDF and, when requested, the HTML next to it.
func writeOutputs(pdfPath string, result *cv2pdf.Result, flags *renderFlags, env *Environment, logger *slog.Logger, start time.Time) error {
	var written []string

	if flags.outputMode.html || flags.outputMode.htmlOnly {
		htmlPath := fileutil.ReplaceExt(pdfPath, htmlExt)
		if err := fileutil.WriteFile(htmlPath, result.HTML); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
		}
		written = append(written, htmlPath)
	}

	if !flags.outputMode.htmlOnly {
		if err := fileutil.WriteFile(pdfPath, result.PDF); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWritePDF, err, hints.ForOutputDirectory())
		}
		written = append(written, pdfPath)
	}

	for _, p := range written {
		logger.Debug("file written", logfields.Output(p), logfields.Redacted(flags.redacted))
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", p)
		}
	}
	logger.Info("render complete", logfields.Since(start))
	return nil
}

// dataHint returns a hint for CV data loading errors.
func dataHint(err error, path string) string {
	switch {
	case errors.Is(err, cvdata.ErrReadData):
		return hints.ForDataNotFound(path)
	case errors.Is(err, cvdata.ErrInvalidData):
		return hints.ForInvalidData()
	}
	return ""
}

// fontHint returns a hint for style sheet errors.
func fontHint(err error, cfg *config.Config) string {
	if !errors.Is(err, style.ErrFontNotFound) {
		return ""
	}
	dir := cfg.Fonts.Dir
	if dir == "" {
		dir = defaultFontsDir
	}
	family := cfg.Fonts.Family
	if family == "" {
		family = style.DefaultFontFamily
	}
	return hints.ForFontNotFound(dir, family)
}

// assetHint returns a hint for unknown style or template set names.
func assetHint(err error) string {
	if errors.Is(err, cv2pdf.ErrStyleNotFound) || errors.Is(err, cv2pdf.ErrTemplateSetNotFound) {
		return hints.ForAssetNotFound([]string{assets.DefaultStyleName})
	}
	return ""
}

// renderHint returns a hint for browser and timeout errors.
func renderHint(err error) string {
	switch {
	case errors.Is(err, cv2pdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, cv2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	}
	return ""
}
