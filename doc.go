// Package cv2pdf renders a CV from structured data to a paginated PDF using
// headless Chrome.
//
// # Quick Start
//
// Load the data, build the style sheet, render, and close when done:
//
//	cv, err := cvdata.Load("cv.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sheet, err := style.NewSheet(style.FontSetFromDir("fonts", "Lato"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, err := cv2pdf.NewConverter(sheet)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Render(ctx, cv2pdf.Input{CV: cv})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(cv2pdf.OutputFileName(cv.Name, "", "", false), result.PDF, 0644)
//
// The result holds the PDF bytes, the intermediate HTML and the assembled
// document. Use Input.HTMLOnly to skip PDF generation.
//
// # Rendering Pipeline
//
//  1. Inline markup expansion (**bold**, __italic__, [label](target))
//  2. Block assembly: info table, expertise grid, experience entries, placed
//     on pages by a PagePolicy
//  3. HTML generation: blocks, base CSS and style sheet CSS in a document
//     template; the footer in a separate per-page template
//  4. PDF printing via headless Chrome (go-rod), which paginates and draws the
//     footer on every page
//
// # Page Policy
//
// DefaultPagePolicy produces three pages: the profile, four experience entries
// in wide mode, then the remaining entries with projects, volunteering and
// interests. A custom policy lists sections per page and takes entries by
// count or by index:
//
//	policy := &cv2pdf.PagePolicy{Pages: []cv2pdf.PageLayout{
//	    {Sections: []string{cv2pdf.SectionIdentity, cv2pdf.SectionInfo}},
//	    {Sections: []string{cv2pdf.SectionExperiences}, Entries: []int{2, 0, 1}},
//	}}
//
// Entries no page takes are reported in Document.Unplaced.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package cv2pdf
