package cv2pdf

import (
	"fmt"
	"slices"

	"github.com/alnah/go-cv2pdf/internal/cvdata"
	"github.com/alnah/go-cv2pdf/internal/layout"
	"github.com/alnah/go-cv2pdf/internal/style"
)

// Section names usable in a page layout.
const (
	SectionIdentity         = "identity"
	SectionInfo             = "info"
	SectionSummary          = "summary"
	SectionStrengths        = "strengths"
	SectionExpertise        = "expertise"
	SectionAchievements     = "achievements"
	SectionExperiences      = "experiences"
	SectionPersonalProjects = "personal_projects"
	SectionVolunteering     = "volunteering"
	SectionInterests        = "interests"
)

// Section headings.
const (
	HeadingSummary          = "Executive Summary"
	HeadingStrengths        = "Core Strengths"
	HeadingExpertise        = "Expertise"
	HeadingAchievements     = "Key Achievements"
	HeadingPersonalProjects = "Personal Projects"
	HeadingVolunteering     = "Volunteering"
	HeadingInterests        = "Interests"
)

// Default policy metrics, in points.
const (
	identitySpacer          = 8
	DefaultExpertiseColumns = 2
	wideEntryGap            = 12
	normalEntryGap          = 6
	wideEntriesPerPage      = 4
)

// PageLayout describes one page: its sections in order and, when it holds the
// experiences section, which entries it takes.
type PageLayout struct {
	Sections []string
	Entries  []int   // explicit entry indices; overrides Take when non-nil
	Take     int     // next unplaced entries to take, 0 = all remaining
	Wide     bool    // wide experience blocks
	Gap      float64 // space between experience entries, points
}

// PagePolicy maps CV sections and experience entries to pages.
type PagePolicy struct {
	Pages            []PageLayout
	ExpertiseColumns int // 0 = DefaultExpertiseColumns
}

// DefaultPagePolicy returns the three-page CV: profile on page 1, four wide
// experience entries on page 2, the remaining entries and other sections on
// page 3.
func DefaultPagePolicy() *PagePolicy {
	return &PagePolicy{
		Pages: []PageLayout{
			{Sections: []string{
				SectionIdentity, SectionInfo, SectionSummary,
				SectionStrengths, SectionExpertise, SectionAchievements,
			}},
			{
				Sections: []string{SectionExperiences},
				Take:     wideEntriesPerPage,
				Wide:     true,
				Gap:      wideEntryGap,
			},
			{
				Sections: []string{
					SectionExperiences, SectionPersonalProjects,
					SectionVolunteering, SectionInterests,
				},
				Gap: normalEntryGap,
			},
		},
		ExpertiseColumns: DefaultExpertiseColumns,
	}
}

var knownSections = []string{
	SectionIdentity, SectionInfo, SectionSummary, SectionStrengths,
	SectionExpertise, SectionAchievements, SectionExperiences,
	SectionPersonalProjects, SectionVolunteering, SectionInterests,
}

// Validate checks the policy independently of any CV.
// Returns nil if p is nil (nil means use the default policy).
func (p *PagePolicy) Validate() error {
	if p == nil {
		return nil
	}
	if len(p.Pages) == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalidPagePolicy)
	}
	if p.ExpertiseColumns < 0 {
		return fmt.Errorf("%w: expertise columns %d", ErrInvalidPagePolicy, p.ExpertiseColumns)
	}

	for i, page := range p.Pages {
		if len(page.Sections) == 0 {
			return fmt.Errorf("%w: page %d has no sections", ErrInvalidPagePolicy, i+1)
		}
		for _, s := range page.Sections {
			if !slices.Contains(knownSections, s) {
				return fmt.Errorf("%w: page %d: unknown section %q", ErrInvalidPagePolicy, i+1, s)
			}
		}
		if page.Take < 0 {
			return fmt.Errorf("%w: page %d: negative take %d", ErrInvalidPagePolicy, i+1, page.Take)
		}
		if page.Gap < 0 {
			return fmt.Errorf("%w: page %d: negative gap %.2f", ErrInvalidPagePolicy, i+1, page.Gap)
		}
	}
	return nil
}

// Document is the assembled block sequence of a CV.
type Document struct {
	Blocks   []layout.Block
	Pages    [][]int // experience entry indices placed on each page
	Unplaced []int   // entries no page took, in index order
}

// BuildDocument assembles the blocks of cv page by page, with page breaks
// between non-empty pages. Entries are placed at most once: an explicit index
// that is out of range or already placed fails with ErrInvalidPagePolicy.
func BuildDocument(cv *cvdata.CV, asm *layout.Assembler, policy *PagePolicy, redacted bool) (*Document, error) {
	if cv == nil {
		return nil, ErrNilCV
	}
	if policy == nil {
		policy = DefaultPagePolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	b := &documentBuilder{
		cv:       cv,
		asm:      asm,
		policy:   policy,
		redacted: redacted,
		placed:   make([]bool, len(cv.Experiences)),
	}

	doc := &Document{Pages: make([][]int, len(policy.Pages))}
	for i, page := range policy.Pages {
		entries, err := b.entriesFor(page)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrInvalidPagePolicy, i+1, err)
		}
		doc.Pages[i] = entries

		blocks := b.page(page, entries)
		if len(blocks) == 0 {
			continue
		}
		if len(doc.Blocks) > 0 {
			doc.Blocks = append(doc.Blocks, layout.PageBreak{})
		}
		doc.Blocks = append(doc.Blocks, blocks...)
	}

	for i, ok := range b.placed {
		if !ok {
			doc.Unplaced = append(doc.Unplaced, i)
		}
	}
	return doc, nil
}

type documentBuilder struct {
	cv       *cvdata.CV
	asm      *layout.Assembler
	policy   *PagePolicy
	redacted bool
	placed   []bool
}

// entriesFor claims the experience entries of page and marks them placed.
func (b *documentBuilder) entriesFor(page PageLayout) ([]int, error) {
	if !slices.Contains(page.Sections, SectionExperiences) {
		return nil, nil
	}

	var entries []int
	if page.Entries != nil {
		for _, idx := range page.Entries {
			if idx < 0 || idx >= len(b.placed) {
				return nil, fmt.Errorf("entry %d out of range (%d entries)", idx, len(b.placed))
			}
			if b.placed[idx] {
				return nil, fmt.Errorf("entry %d placed twice", idx)
			}
			b.placed[idx] = true
			entries = append(entries, idx)
		}
		return entries, nil
	}

	for idx, done := range b.placed {
		if done {
			continue
		}
		if page.Take > 0 && len(entries) == page.Take {
			break
		}
		b.placed[idx] = true
		entries = append(entries, idx)
	}
	return entries, nil
}

func (b *documentBuilder) page(page PageLayout, entries []int) []layout.Block {
	var out []layout.Block
	for _, section := range page.Sections {
		out = append(out, b.section(section, page, entries)...)
	}
	return out
}

func (b *documentBuilder) section(name string, page PageLayout, entries []int) []layout.Block {
	cv := b.cv
	switch name {
	case SectionIdentity:
		return []layout.Block{
			layout.P(cv.Name, style.Name),
			layout.P(cv.Title, style.JobTitle),
			layout.Space(identitySpacer),
		}
	case SectionInfo:
		return []layout.Block{b.asm.InfoTable(cv.Basics, b.redacted)}
	case SectionSummary:
		return append(heading(HeadingSummary, style.Page1Section), layout.Ps(cv.Summary, style.Body)...)
	case SectionStrengths:
		return append(heading(HeadingStrengths, style.Page1Section), layout.Bs(cv.Strengths, style.Body, 0, 0)...)
	case SectionExpertise:
		cols := b.policy.ExpertiseColumns
		if cols == 0 {
			cols = DefaultExpertiseColumns
		}
		return append(heading(HeadingExpertise, style.Page1Section), b.asm.ExpertiseBlock(cv.Expertise, cols))
	case SectionAchievements:
		return append(heading(HeadingAchievements, style.Page1Section), layout.Bs(cv.Achievements, style.Body, 0, 0)...)
	case SectionExperiences:
		return b.experiences(page, entries)
	case SectionPersonalProjects:
		return append(heading(HeadingPersonalProjects, style.OtherSection), b.asm.PersonalBlock(cv.PersonalProjects)...)
	case SectionVolunteering:
		return append(heading(HeadingVolunteering, style.OtherSection), b.asm.PersonalBlock(cv.Volunteering)...)
	case SectionInterests:
		return append(heading(HeadingInterests, style.OtherSection), layout.P(cv.Interests, style.Body))
	}
	return nil
}

// experiences returns the entry blocks separated by the page gap.
func (b *documentBuilder) experiences(page PageLayout, entries []int) []layout.Block {
	var out []layout.Block
	for i, idx := range entries {
		if i > 0 {
			out = append(out, layout.Space(page.Gap))
		}
		out = append(out, b.asm.ExperienceBlock(b.cv.Experiences[idx], page.Wide)...)
	}
	return out
}

func heading(text, styleName string) []layout.Block {
	return []layout.Block{layout.P(text, styleName)}
}
