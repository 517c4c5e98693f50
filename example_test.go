package toolcards_test

import (
	"context"
	"fmt"
	"strings"

	toolcards "github.com/alnah/go-toolcards"
)

const exampleCatalog = `## 🔥 热门推荐工具

| 工具名称 | 链接 | 图标 | 描述 |
|---------|------|------|------|
| DeepSeek | https://chat.deepseek.com | hysaitool/images/deepseek-icon.png | 对话助手 |
`

const examplePage = `<ul class="sidebar-nav"></ul>
<main><section class="category-section"></section></main>`

// Example runs the three stages by hand on in-memory documents.
func Example() {
	gen, err := toolcards.NewGenerator()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	cat, _ := gen.Parse(exampleCatalog)
	frags, err := gen.Render(context.Background(), cat)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	page, report := gen.Patch(examplePage, frags)
	fmt.Println(cat.Names(), report.Complete())
	fmt.Println(strings.Contains(page, `src="images/deepseek-icon.png"`))
	// Output:
	// [热门推荐工具] true
	// true
}

// Example_partialPage shows that a missing anchor is reported, not fatal.
func Example_partialPage() {
	gen, err := toolcards.NewGenerator()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	cat, _ := gen.Parse(exampleCatalog)
	frags, _ := gen.Render(context.Background(), cat)
	_, report := gen.Patch(`<main><section class="category-section"></section></main>`, frags)

	fmt.Println(report.NavReplaced, report.ContentReplaced)
	for _, w := range report.Warnings(gen.Anchors()) {
		fmt.Println(w)
	}
	// Output:
	// false true
	// navigation anchor <ul class="sidebar-nav"> not found
}
