// Package assets provides the base CSS and the HTML templates used to render
// a CV. Assets can be loaded from embedded files or a custom directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a user can override the base CSS alone and keep the built-in
// templates. A template set is resolved whole: a custom set holding only one
// of its two files is an error, not a fallback.
//
// # Directory Structure
//
//	{dir}/
//	├── styles/
//	│   └── {name}.css           # base CSS
//	└── templates/
//	    └── {name}/
//	        ├── document.html    # page document skeleton
//	        └── footer.html      # per-page footer template
//
// # Security
//
// Asset names are limited to letters, digits, '-' and '_'. FilesystemLoader
// resolves symlinks and rejects any file that lands outside its directory.
// Both loaders read through io/fs, so the built-in and the custom sets obey
// the same not-found and incomplete-set rules.
package assets
