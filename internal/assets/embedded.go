package assets

import (
	"embed"
	"path"
)

//go:embed styles/* templates/*
var builtin embed.FS

// EmbeddedLoader serves the built-in base CSS and template sets.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return readStyle(builtin, "styles", name)
}

func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return readTemplateSet(builtin, path.Join("templates", name), name)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
