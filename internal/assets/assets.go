package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the embedded loader.
// Returns ErrStyleNotFound if the style does not exist.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplateSet loads a template set by name using the embedded loader.
// Returns ErrTemplateSetNotFound if the template set does not exist.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}
