package catalog

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// cellParser only needs the CommonMark inline grammar.
var cellParser = goldmark.New().Parser()

// cellLink returns the destination when the whole cell is a single Markdown
// link, autolink or image. Any other cell is returned as written.
func cellLink(cell string) string {
	if !strings.ContainsAny(cell, "[]<>!") {
		return cell
	}

	src := []byte(cell)
	doc := cellParser.Parse(text.NewReader(src))

	para := doc.FirstChild()
	if para == nil || para.NextSibling() != nil || para.Kind() != ast.KindParagraph {
		return cell
	}
	node := para.FirstChild()
	if node == nil || node.NextSibling() != nil {
		return cell
	}

	var dest string
	switch n := node.(type) {
	case *ast.Link:
		dest = string(n.Destination)
	case *ast.Image:
		dest = string(n.Destination)
	case *ast.AutoLink:
		dest = string(n.URL(src))
	}
	if dest = strings.TrimSpace(dest); dest == "" {
		return cell
	}
	return dest
}
