// Package catalog parses tool-directory Markdown documents into a Catalog.
//
// A source document is a sequence of level-2 headings, each followed by a
// pipe table:
//
//	## 🔥 热门推荐工具
//
//	| 工具名称 | 链接 | 图标 | 描述 |
//	|---|---|---|---|
//	| ToolA | https://a.example | icons/a.png | desc A |
//
// Each heading becomes a Category (decorative symbols stripped from its
// title) and each data row becomes a ToolRecord. Parsing is best-effort:
// short rows and rows without a name or URL are skipped, and categories that
// end up empty are omitted. Parse never fails; the worst case is an empty
// Catalog.
//
// Write produces the same document shape from a Catalog, so scraped
// directories can be turned into source documents.
package catalog
