// Package toolcards turns a Markdown catalog of tools into the navigation
// sidebar and card grid of a static directory page.
//
// # Quick Start
//
// Create a generator and run it against a catalog and the page to update:
//
//	gen, err := toolcards.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := gen.Run(ctx, toolcards.Config{
//	    InputPath:  "AI工具集分类整理_最终版.md",
//	    OutputPath: "obsidian_workshop.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Catalog.ToolCount(), "tools written")
//
// # Pipeline
//
// Run executes these stages once, in order:
//
//  1. Load: read the catalog document
//  2. Parse: "## " headings followed by pipe tables become categories of tools
//  3. Render: html/template produces the navigation entries and one
//     category section of cards per category
//  4. Patch: the children of <ul class="sidebar-nav"> and everything from the
//     first <section class="category-section"> up to </main> are replaced,
//     the rest of the page is kept byte for byte
//  5. Write: the page is replaced atomically
//
// Each stage is also available on its own through Parse, Render and Patch.
// Running the pipeline twice with the same catalog leaves the page unchanged
// the second time.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := toolcards.NewGenerator(
//	    toolcards.WithLogger(logger),
//	    toolcards.WithIconRules([]toolcards.IconRule{{Match: "AI音频", Icon: "fas fa-music"}}, ""),
//	    toolcards.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Custom Templates
//
// Card markup comes from a template set of three html/template files.
// Override them with a directory laid out as:
//
//	assets/
//	└── templates/
//	    └── default/
//	        ├── section.html   (invokes {{template "card" .}})
//	        ├── card.html
//	        └── nav.html
package toolcards
