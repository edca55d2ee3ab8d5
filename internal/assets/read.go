package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// readStyle reads {dir}/{name}.css from fsys.
func readStyle(fsys fs.FS, dir, name string) (string, error) {
	content, err := fs.ReadFile(fsys, path.Join(dir, name+".css"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// readTemplateSet reads the document and footer templates under dir.
// A set with neither file does not exist; a set with one is incomplete.
func readTemplateSet(fsys fs.FS, dir, name string) (*TemplateSet, error) {
	files := [...]string{DocumentTemplateFile, FooterTemplateFile}
	var contents [len(files)]string
	var missing []string

	for i, file := range files {
		content, err := fs.ReadFile(fsys, path.Join(dir, file))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, file)
		case err != nil:
			return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, file, err)
		default:
			contents[i] = string(content)
		}
	}

	switch len(missing) {
	case 0:
		return &TemplateSet{Name: name, Document: contents[0], Footer: contents[1]}, nil
	case len(files):
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, missing[0])
	}
}
