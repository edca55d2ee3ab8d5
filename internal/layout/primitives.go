package layout

import (
	"github.com/alnah/go-cv2pdf/internal/markup"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// BulletGlyph prefixes bulleted paragraphs.
const BulletGlyph = "•"

// P returns a paragraph with text expanded for inline markup.
func P(text, styleName string) Paragraph {
	return Paragraph{Text: markup.Expand(text), Style: styleName}
}

// B returns a bulleted paragraph.
func B(text, styleName string) Paragraph {
	p := P(text, styleName)
	p.Bullet = BulletGlyph
	return p
}

// Aligned returns a copy of p with an explicit alignment.
func (p Paragraph) Aligned(a style.Align) Paragraph {
	p.Align = &a
	return p
}

// Ps returns one paragraph per text, in order.
func Ps(texts []string, styleName string) []Block {
	out := make([]Block, 0, len(texts))
	for _, t := range texts {
		out = append(out, P(t, styleName))
	}
	return out
}

// Bs returns a top spacer, one bulleted paragraph per text and a bottom spacer.
// Both spacers are emitted even when texts is empty.
func Bs(texts []string, styleName string, top, bottom float64) []Block {
	out := make([]Block, 0, len(texts)+2)
	out = append(out, Space(top))
	for _, t := range texts {
		out = append(out, B(t, styleName))
	}
	return append(out, Space(bottom))
}

// Space returns a blank block h points high.
func Space(h float64) Spacer {
	return Spacer{Height: h}
}

// TableOption configures a table built by BaseTable.
type TableOption func(*Table)

// WithTopPadding sets the top padding of every row but the first.
func WithTopPadding(pt float64) TableOption {
	return func(t *Table) { t.TopPadding = pt }
}

// WithRightPadding sets the right padding of every cell.
func WithRightPadding(pt float64) TableOption {
	return func(t *Table) { t.RightPadding = pt }
}

// WithGrid draws thin gridlines around every cell.
func WithGrid(show bool) TableOption {
	return func(t *Table) { t.ShowGrid = show }
}

// WithVAlign sets the vertical alignment of every cell.
func WithVAlign(v VAlign) TableOption {
	return func(t *Table) { t.VAlign = v }
}

// BaseTable returns a table with top-aligned cells and no padding, left-aligned
// on the page.
func BaseTable(rows [][]Cell, colWidths []float64, opts ...TableOption) Table {
	t := Table{Rows: rows, ColWidths: colWidths}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Cells wraps each block in its own cell, giving one table row.
func Cells(blocks ...Block) []Cell {
	row := make([]Cell, len(blocks))
	for i, b := range blocks {
		row[i] = Cell{b}
	}
	return row
}

// Widths converts centimetre widths to points.
func Widths(cm ...float64) []float64 {
	out := make([]float64, len(cm))
	for i, v := range cm {
		out[i] = Cm(v)
	}
	return out
}
