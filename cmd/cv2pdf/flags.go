package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags controlling output verbosity and config lookup.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags (base CSS, templates, custom asset path).
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// renderFlags holds all flags of the render command.
type renderFlags struct {
	common     commonFlags
	redacted   bool
	data       string
	output     string
	fontsDir   string
	grid       bool
	timeout    string
	date       string
	assets     assetFlags
	outputMode outputFlags
	version    bool
	help       bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "base CSS name")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseFlags parses render flags and returns positional args.
// Parse errors are returned, never printed; -h/--help sets help.
func parseFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("cv2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &renderFlags{}

	fs.BoolVar(&f.redacted, "redacted", false, "blank personal details, add the redaction note")
	fs.StringVarP(&f.data, "data", "d", "", "CV data file (.json, .yaml, .yml)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory or .pdf file")
	fs.StringVar(&f.fontsDir, "fonts-dir", "", "directory holding the font files")
	fs.BoolVar(&f.grid, "grid", false, "draw table gridlines")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.date, "date", "", "footer date: \"auto\", \"auto:FORMAT\" or literal")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
