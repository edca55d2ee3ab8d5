package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf [flags] [data-file]")
	fmt.Fprintln(w, "       cv2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a CV data file (.json, .yaml, .yml) to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -d, --data <path>         CV data file (default: cv.json)")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory or .pdf file")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --redacted            Blank personal details, add the redaction note")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --fonts-dir <path>    Directory holding <Family>-Regular/Bold/Italic.ttf")
	fmt.Fprintln(w, "      --grid                Draw table gridlines")
	fmt.Fprintln(w, "      --date <s>            Footer date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): cv, iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Updated] MMMM YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --style <name>        Base CSS name")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CV2PDF_CONFIG, CV2PDF_DATA, CV2PDF_OUTPUT_DIR, CV2PDF_FONTS_DIR,")
	fmt.Fprintln(w, "  CV2PDF_TIMEOUT, CV2PDF_DATE; ROD_BROWSER_BIN, ROD_NO_SANDBOX.")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, fonts and the environment before rendering.")
}
