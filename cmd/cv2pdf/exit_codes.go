package main

import (
	"errors"
	"os"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// Exit codes for the cv2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config or CV data
	ExitIO      = 3 // File not found, permission denied, missing fonts
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cv2pdf.ErrBrowserConnect) ||
		errors.Is(err, cv2pdf.ErrPageCreate) ||
		errors.Is(err, cv2pdf.ErrPageLoad) ||
		errors.Is(err, cv2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, cvdata.ErrReadData) ||
		errors.Is(err, style.ErrFontNotFound) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, cvdata.ErrParseData) ||
		errors.Is(err, cvdata.ErrInvalidData) ||
		errors.Is(err, cvdata.ErrUnsupportedFormat) ||
		errors.Is(err, style.ErrInvalidFontSet) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, cv2pdf.ErrInvalidPageSize) ||
		errors.Is(err, cv2pdf.ErrInvalidMargin) ||
		errors.Is(err, cv2pdf.ErrInvalidPagePolicy) ||
		errors.Is(err, cv2pdf.ErrStyleNotFound) ||
		errors.Is(err, cv2pdf.ErrTemplateSetNotFound) ||
		errors.Is(err, cv2pdf.ErrIncompleteTemplateSet) ||
		errors.Is(err, cv2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
