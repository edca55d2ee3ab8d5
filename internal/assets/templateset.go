package assets

// TemplateSet holds the HTML templates of one CV rendering.
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Document string // Page document skeleton
	Footer   string // Footer drawn on every page
}

// Template file names inside a template set directory.
const (
	DocumentTemplateFile = "document.html"
	FooterTemplateFile   = "footer.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in base CSS.
const DefaultStyleName = "default"
