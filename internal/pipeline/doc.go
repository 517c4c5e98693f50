// Package pipeline renders a tool catalog to markup and splices it into a
// target page.
//
// The stages are:
//   - Icon lookup: category name -> symbolic icon class (IconTable)
//   - Icon resolution: record icon reference -> image source (ResolveIcon)
//   - Rendering: catalog -> navigation and content fragments (Renderer)
//   - Patching: fragments -> updated target document (Patcher)
//
// Parsing the source Markdown is handled by the catalog package, and file
// I/O by the root toolcards package. Every stage here is pure: identical
// inputs give byte-identical outputs.
package pipeline
