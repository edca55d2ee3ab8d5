package pipeline

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/layout"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// ErrUnknownBlock indicates a block type the renderer cannot draw.
var ErrUnknownBlock = errors.New("unknown layout block")

// CSS classes shared with the base stylesheet.
const (
	classBullet    = "bullet"
	classSpacer    = "spacer"
	classPageBreak = "page-break"
	classTable     = "cv"
	classGrid      = "grid"
	classVBottom   = "valign-bottom"

	// Chrome fills elements with this class with the current page number.
	classPageNumber = "pageNumber"
)

// BlockRenderer renders layout blocks as HTML.
type BlockRenderer struct {
	sheet *style.Sheet
}

// NewBlockRenderer returns a renderer resolving paragraph styles in sheet.
func NewBlockRenderer(sheet *style.Sheet) *BlockRenderer {
	return &BlockRenderer{sheet: sheet}
}

// Render returns the HTML of blocks, in order. Fails on a paragraph whose
// style is not in the sheet.
func (r *BlockRenderer) Render(blocks []layout.Block) (string, error) {
	var b strings.Builder
	if err := r.writeBlocks(&b, blocks); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderFooter returns the HTML of the footer table.
func (r *BlockRenderer) RenderFooter(f layout.FooterBlock) (string, error) {
	return r.Render([]layout.Block{f.Table})
}

func (r *BlockRenderer) writeBlocks(b *strings.Builder, blocks []layout.Block) error {
	for _, blk := range blocks {
		if err := r.writeBlock(b, blk); err != nil {
			return err
		}
	}
	return nil
}

func (r *BlockRenderer) writeBlock(b *strings.Builder, blk layout.Block) error {
	switch v := blk.(type) {
	case layout.Paragraph:
		return r.writeParagraph(b, v)
	case layout.Spacer:
		fmt.Fprintf(b, `<div class="%s" style="height: %spt"></div>`+"\n", classSpacer, pt(v.Height))
	case layout.Table:
		return r.writeTable(b, v)
	case layout.PageBreak:
		fmt.Fprintf(b, `<div class="%s"></div>`+"\n", classPageBreak)
	case layout.PageNumber:
		return r.writePageNumber(b, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownBlock, blk)
	}
	return nil
}

func (r *BlockRenderer) writeParagraph(b *strings.Builder, p layout.Paragraph) error {
	if !r.sheet.Has(p.Style) {
		return fmt.Errorf("%w: %q", style.ErrUnknownStyle, p.Style)
	}

	writeParagraphOpen(b, p.Style, p.Align)
	if p.Bullet != "" {
		fmt.Fprintf(b, `<span class="%s">%s</span>`, classBullet, html.EscapeString(p.Bullet))
	}
	b.WriteString(p.Text.HTML(r.sheet.LinkColor()))
	b.WriteString("</p>\n")
	return nil
}

func (r *BlockRenderer) writePageNumber(b *strings.Builder, pn layout.PageNumber) error {
	if !r.sheet.Has(pn.Style) {
		return fmt.Errorf("%w: %q", style.ErrUnknownStyle, pn.Style)
	}

	writeParagraphOpen(b, pn.Style, pn.Align)
	if pn.Label != "" {
		b.WriteString(html.EscapeString(pn.Label))
		b.WriteString(" ")
	}
	fmt.Fprintf(b, `<span class="%s"></span></p>`+"\n", classPageNumber)
	return nil
}

func writeParagraphOpen(b *strings.Builder, styleName string, align *style.Align) {
	fmt.Fprintf(b, `<p class="%s"`, style.ClassName(styleName))
	if align != nil {
		fmt.Fprintf(b, ` style="text-align: %s"`, align.CSS())
	}
	b.WriteString(">")
}

// writeTable draws a table with fixed column widths. Cells have no padding
// except the table's right padding and, from the second row on, its top padding.
func (r *BlockRenderer) writeTable(b *strings.Builder, t layout.Table) error {
	classes := []string{classTable}
	if t.ShowGrid {
		classes = append(classes, classGrid)
	}
	if t.VAlign == layout.VAlignBottom {
		classes = append(classes, classVBottom)
	}

	fmt.Fprintf(b, `<table class="%s"`, strings.Join(classes, " "))
	if len(t.ColWidths) > 0 {
		var total float64
		for _, w := range t.ColWidths {
			total += w
		}
		fmt.Fprintf(b, ` style="width: %spt"`, pt(total))
	}
	b.WriteString(">\n")

	if len(t.ColWidths) > 0 {
		b.WriteString("<colgroup>")
		for _, w := range t.ColWidths {
			fmt.Fprintf(b, `<col style="width: %spt">`, pt(w))
		}
		b.WriteString("</colgroup>\n")
	}

	b.WriteString("<tbody>\n")
	for i, row := range t.Rows {
		top := t.TopPadding
		if i == 0 {
			top = 0
		}
		b.WriteString("<tr>")
		for _, cell := range row {
			if top > 0 || t.RightPadding > 0 {
				fmt.Fprintf(b, `<td style="padding: %spt %spt 0 0">`, pt(top), pt(t.RightPadding))
			} else {
				b.WriteString("<td>")
			}
			b.WriteString("\n")
			if err := r.writeBlocks(b, cell); err != nil {
				return err
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	return nil
}

// pt formats a length in points rounded to two decimals.
func pt(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
