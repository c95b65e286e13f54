// Package assets provides the stylesheets and Markdown document templates
// used by the browser engine.
//
// A Store resolves an asset from an optional directory first and the
// embedded set second, so one style or template can be overridden while the
// others keep their defaults. Directories are laid out as:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.md
//
// Names are plain identifiers. Custom directories are opened with os.Root,
// so symlinks cannot reach files outside basePath.
package assets
