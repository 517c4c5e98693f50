// Package assets provides the HTML templates used to render tool cards.
//
// # Loader Architecture
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default set)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}/
//	        ├── section.html     # One category section, includes cards
//	        ├── card.html        # One tool card (template "card")
//	        └── nav.html         # Sidebar navigation entries
//
// Templates are html/template sources, so every interpolated value is
// escaped for its markup context.
//
// # Security
//
// Template set names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
