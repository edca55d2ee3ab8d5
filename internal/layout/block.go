// Package layout builds the block sequence of a CV page: paragraphs, spacers,
// tables and page breaks.
//
// Blocks are plain values with no identity beyond their position. They are
// turned into HTML by the pipeline package and paginated by the rendering
// engine. All lengths are in points.
package layout

import (
	"github.com/alnah/go-cv2pdf/internal/markup"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// Points per centimetre.
const pointsPerCm = 72 / 2.54

// Cm converts centimetres to points.
func Cm(v float64) float64 {
	return v * pointsPerCm
}

// Block is one element of the layout sequence.
type Block interface {
	isBlock()
}

// Paragraph is styled text set in a named style.
type Paragraph struct {
	Text   markup.Fragment
	Style  string
	Bullet string       // bullet glyph, empty for none
	Align  *style.Align // overrides the style alignment when set
}

// Spacer is a fixed-height blank block.
type Spacer struct {
	Height float64
}

// VAlign is the vertical alignment of table cells.
type VAlign int

// Vertical alignments.
const (
	VAlignTop VAlign = iota
	VAlignBottom
)

// Cell is the content of one table cell.
type Cell []Block

// Table is a grid of cells. The first row never gets top padding.
type Table struct {
	Rows         [][]Cell
	ColWidths    []float64 // nil lets the engine size the columns
	TopPadding   float64
	RightPadding float64
	VAlign       VAlign
	ShowGrid     bool
}

// PageBreak forces the next block onto a new page.
type PageBreak struct{}

// PageNumber is replaced by the current page number on every page. It only
// makes sense inside the footer.
type PageNumber struct {
	Label string
	Style string
	Align *style.Align
}

func (Paragraph) isBlock()  {}
func (Spacer) isBlock()     {}
func (Table) isBlock()      {}
func (PageBreak) isBlock()  {}
func (PageNumber) isBlock() {}

// FooterBlock is drawn on every page at Offset points above the page bottom.
type FooterBlock struct {
	Table  Table
	Offset float64
}
