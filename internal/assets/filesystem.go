package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a user directory laid out like the
// built-in ones: styles/{name}.css and templates/{name}/.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
	fsys fs.FS
}

// NewFilesystemLoader returns ErrInvalidBasePath unless dir is a readable
// directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	_, err = os.ReadDir(root)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		if info, statErr := os.Stat(root); statErr == nil && !info.IsDir() {
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
		}
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{root: root, fsys: os.DirFS(root)}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if err := f.contain("styles", name+".css"); err != nil {
		return "", err
	}
	return readStyle(f.fsys, "styles", name)
}

func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	for _, file := range []string{DocumentTemplateFile, FooterTemplateFile} {
		if err := f.contain("templates", name, file); err != nil {
			return nil, err
		}
	}
	return readTemplateSet(f.fsys, "templates/"+name, name)
}

// contain rejects a path whose symlink-resolved target lies outside root.
// os.DirFS follows links, so names alone are not enough. Missing files pass
// and are reported by the read.
func (f *FilesystemLoader) contain(elem ...string) error {
	target := filepath.Join(append([]string{f.root}, elem...)...)
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if !strings.HasPrefix(target, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, filepath.Join(elem...), f.root)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
