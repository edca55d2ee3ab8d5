package main

import (
	"context"
	"io"
	"os"
	"time"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// Renderer is the interface for the CV converter.
type Renderer interface {
	Render(ctx context.Context, input cv2pdf.Input) (*cv2pdf.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Renderer = (*cv2pdf.Converter)(nil)

// RendererFactory builds a Renderer bound to a style sheet.
type RendererFactory func(sheet *style.Sheet, opts ...cv2pdf.Option) (Renderer, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the renderer constructor.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewRenderer RendererFactory
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewRenderer: func(sheet *style.Sheet, opts ...cv2pdf.Option) (Renderer, error) {
			return cv2pdf.NewConverter(sheet, opts...)
		},
	}
}
