package assets

// AssetLoader defines the contract for loading the base CSS and templates.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the document and footer templates of a set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist and
	// ErrIncompleteTemplateSet if one of its templates is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
