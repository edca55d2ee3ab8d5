package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded assets when an asset is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only. Returns an error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplateSet loads a template set, custom directory first.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return loadWithFallback(r, func(loader AssetLoader) (*TemplateSet, error) {
		return loader.LoadTemplateSet(name)
	})
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// loadWithFallback only falls back on "not found" errors; validation and
// I/O errors from the custom directory are returned as is.
func loadWithFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil {
		return v, nil
	}
	if !isNotFoundError(err) {
		var zero T
		return zero, err
	}

	return load(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateSetNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
