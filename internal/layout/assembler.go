package layout

import (
	"fmt"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// Fixed labels of the assembled blocks.
const (
	ContextHeading = "Context"
	TasksHeading   = "Tasks & Responsibilities"

	DefaultVersionLabel = "CV Version"
	PageLabel           = "Page"
)

// Separators of the experience metadata line.
const (
	metaLabelSep = "&nbsp;&nbsp;"
	metaPairSep  = "&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;"
)

// Metrics in points unless named in cm.
const (
	infoRowPadding    = 6
	expertiseColCm    = 8
	expertiseRightPad = 6
	categorySpacer    = 4
	headerSpacer      = 3
	wideSpacer        = 3
	tasksTop          = 2
	tasksBottom       = 6
	footerOffsetCm    = 0.25
)

// Assembler composes primitives into the CV blocks.
type Assembler struct {
	showGrid     bool
	versionLabel string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithShowGrid draws gridlines on every table, for layout debugging.
func WithShowGrid(show bool) Option {
	return func(a *Assembler) { a.showGrid = show }
}

// WithVersionLabel sets the label printed before the date in the footer.
func WithVersionLabel(label string) Option {
	return func(a *Assembler) {
		if label != "" {
			a.versionLabel = label
		}
	}
}

// NewAssembler returns an assembler. Blocks name their styles; the sheet is
// resolved when they are rendered.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{versionLabel: DefaultVersionLabel}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// table is BaseTable with the assembler's grid setting applied.
func (a *Assembler) table(rows [][]Cell, colWidths []float64, opts ...TableOption) Table {
	return BaseTable(rows, colWidths, append(opts, WithGrid(a.showGrid))...)
}

// InfoTable places the left and right info tables side by side. When redacted,
// every left value is blanked (labels stay) and the redaction note is added
// below the left table. The right table never changes.
func (a *Assembler) InfoTable(basics cvdata.Basics, redacted bool) Table {
	left := a.sideTable(basics.Left, Widths(2.5, 4.5), redacted)
	right := a.sideTable(basics.Right, Widths(2.5, 7), false)

	var leftCell Block = left
	if redacted {
		leftCell = a.table(
			[][]Cell{{{left}}, {{P(basics.RedactedNote, style.Body)}}},
			nil,
			WithTopPadding(infoRowPadding),
		)
	}

	return a.table([][]Cell{Cells(leftCell, right)}, Widths(8, 8))
}

func (a *Assembler) sideTable(items cvdata.InfoMap, colWidths []float64, redacted bool) Table {
	rows := make([][]Cell, 0, len(items))
	for _, item := range items {
		label := P(item.Label, style.BodyBold)

		var value Block
		switch {
		case redacted:
			value = P("", style.Body)
		case item.IsMapping():
			value = a.subTable(item.Sub)
		default:
			value = P(item.Value, style.Body)
		}
		rows = append(rows, Cells(label, value))
	}
	return a.table(rows, colWidths, WithTopPadding(infoRowPadding))
}

// subTable renders a mapping value, such as spoken languages, as two columns.
func (a *Assembler) subTable(items cvdata.InfoMap) Table {
	rows := make([][]Cell, 0, len(items))
	for _, item := range items {
		value := item.Value
		if item.IsMapping() {
			value = item.Sub.String()
		}
		rows = append(rows, Cells(P(item.Label, style.Body), P(value, style.Body)))
	}
	return a.table(rows, Widths(2.5, 2))
}

// ExpertiseBlock distributes categories over nCols columns: category i goes to
// column i mod nCols, keeping input order inside each column. Each category is
// a bold header, one paragraph per line and a small spacer.
func (a *Assembler) ExpertiseBlock(categories []cvdata.Category, nCols int) Table {
	if nCols < 1 {
		nCols = 1
	}

	cols := make([]Cell, nCols)
	for i, c := range categories {
		col := i % nCols
		cols[col] = append(cols[col], P(c.Name, style.BodyBold))
		cols[col] = append(cols[col], Ps(c.Lines, style.Body)...)
		cols[col] = append(cols[col], Space(categorySpacer))
	}

	widths := make([]float64, nCols)
	for i := range widths {
		widths[i] = Cm(expertiseColCm)
	}

	return a.table([][]Cell{cols}, widths, WithRightPadding(expertiseRightPad))
}

// ExperienceTitle returns the left header text of an experience entry.
func ExperienceTitle(exp cvdata.Experience) string {
	title := fmt.Sprintf("%s —  %s", exp.Company, exp.Role)
	if exp.Department != "" {
		title = fmt.Sprintf("%s (%s)", title, exp.Department)
	}
	return title
}

// MetaLine joins metadata pairs as "**label**  value", pairs separated by
// wide fixed spacing.
func MetaLine(meta []cvdata.MetaItem) string {
	pairs := make([]string, len(meta))
	for i, m := range meta {
		pairs[i] = "**" + m.Label + "**" + metaLabelSep + m.Value
	}
	return strings.Join(pairs, metaPairSep)
}

// ExperienceBlock returns the blocks of one experience entry. Wide mode adds
// vertical space around the metadata line, for the two-column page.
func (a *Assembler) ExperienceBlock(exp cvdata.Experience, wide bool) []Block {
	header := a.table(
		[][]Cell{Cells(P(ExperienceTitle(exp), style.ExperienceHeader), P(exp.Dates, style.ExperienceHeader))},
		Widths(13.25, 4),
	)

	out := []Block{header, Space(headerSpacer)}
	if wide {
		out = append(out, Space(wideSpacer))
	}
	// Emitted even without metadata.
	out = append(out, P(MetaLine(exp.Meta), style.Body))
	if wide {
		out = append(out, Space(wideSpacer))
	}

	out = append(out, P(ContextHeading, style.ExperienceSection))
	out = append(out, Ps(exp.Context, style.Body)...)
	out = append(out, P(TasksHeading, style.ExperienceSection))
	out = append(out, Bs(exp.Tasks, style.Body, tasksTop, tasksBottom)...)

	return out
}

// PersonalBlock returns "title (dates)" followed by the summary for each entry.
func (a *Assembler) PersonalBlock(entries []cvdata.Entry) []Block {
	out := make([]Block, 0, 2*len(entries))
	for _, e := range entries {
		title := e.Title
		if e.Dates != "" {
			title = fmt.Sprintf("%s (%s)", e.Title, e.Dates)
		}
		out = append(out, P(title, style.ExperienceSection), P(e.Summary, style.Body))
	}
	return out
}

// Footer returns the per-page footer: page number, footer text and version
// date. date is formatted once by the caller and reused on every page.
func (a *Assembler) Footer(text, date string) FooterBlock {
	left := style.AlignLeft
	page := PageNumber{Label: PageLabel, Style: style.Footer, Align: &left}
	mid := P(text, style.Footer).Aligned(style.AlignCenter)
	right := P(a.versionLabel+" — "+date, style.Footer).Aligned(style.AlignRight)

	return FooterBlock{
		Table:  BaseTable([][]Cell{Cells(page, mid, right)}, Widths(3, 10, 4), WithVAlign(VAlignBottom)),
		Offset: Cm(footerOffsetCm),
	}
}
