package main

// Notes:
// - exitCodeFor: we test each sentinel family through a wrapped error, since
//   runRender always wraps before returning.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/dateutil"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown", errors.New("boom"), ExitGeneral},
		{"cancelled", context.Canceled, ExitGeneral},

		{"browser connect", cv2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", cv2pdf.ErrPageCreate, ExitBrowser},
		{"page load", cv2pdf.ErrPageLoad, ExitBrowser},
		{"pdf generation", cv2pdf.ErrPDFGeneration, ExitBrowser},

		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read data", cvdata.ErrReadData, ExitIO},
		{"font not found", style.ErrFontNotFound, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"write html", ErrWriteHTML, ExitIO},

		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid value", config.ErrInvalidValue, ExitUsage},
		{"parse data", cvdata.ErrParseData, ExitUsage},
		{"invalid data", cvdata.ErrInvalidData, ExitUsage},
		{"unsupported format", cvdata.ErrUnsupportedFormat, ExitUsage},
		{"invalid font set", style.ErrInvalidFontSet, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"page size", cv2pdf.ErrInvalidPageSize, ExitUsage},
		{"margin", cv2pdf.ErrInvalidMargin, ExitUsage},
		{"page policy", cv2pdf.ErrInvalidPagePolicy, ExitUsage},
		{"style not found", cv2pdf.ErrStyleNotFound, ExitUsage},
		{"template set not found", cv2pdf.ErrTemplateSetNotFound, ExitUsage},
		{"invalid asset path", cv2pdf.ErrInvalidAssetPath, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.err
			if err != nil {
				err = fmt.Errorf("context: %w", err)
			}
			if got := exitCodeFor(err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
