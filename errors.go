package cv2pdf

import (
	"errors"

	"github.com/alnah/go-cv2pdf/internal/assets"
)

// Sentinel errors for library operations.
var (
	ErrNilCV          = errors.New("CV data cannot be nil")
	ErrNilStyleSheet  = errors.New("style sheet cannot be nil")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Page policy errors.
	ErrInvalidPagePolicy = errors.New("invalid page policy")

	// Asset loading errors.
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
