package assets

import "fmt"

// ValidateAssetName checks that an asset name is safe for use as a file or
// directory name. Only ASCII letters, digits, '-' and '_' are allowed, which
// rules out path separators, extensions and traversal sequences.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
