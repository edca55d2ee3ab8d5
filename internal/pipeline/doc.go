// Package pipeline turns layout blocks into the HTML handed to the PDF engine.
//
// It has three stages:
//   - block rendering: paragraphs, spacers, tables and page breaks to HTML
//   - document assembly: the rendered body wrapped in the document template,
//     with the base CSS and the style sheet CSS injected into <head>
//   - footer assembly: the footer block wrapped in the per-page footer template
//
// PDF generation is handled separately by the root cv2pdf package using
// headless Chrome (go-rod), which performs pagination and draws the footer on
// every page.
package pipeline
