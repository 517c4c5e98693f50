package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultColumns are the table header labels written by Write.
var DefaultColumns = [minFields]string{"工具名称", "链接", "图标", "描述"}

// WriteOptions configures Write.
type WriteOptions struct {
	Title   string            // optional level-1 title line
	Columns [minFields]string // header labels; zero value uses DefaultColumns
}

// Write renders c as a source document that Parse reads back into an equal
// Catalog, provided the first column label is one of the parser's header
// names.
func Write(w io.Writer, c *Catalog, opts WriteOptions) error {
	cols := opts.Columns
	if cols == ([minFields]string{}) {
		cols = DefaultColumns
	}

	bw := bufio.NewWriter(w)
	if opts.Title != "" {
		fmt.Fprintf(bw, "# %s\n\n", oneLine(opts.Title))
	}

	for i, cat := range c.Categories {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "## %s\n\n", oneLine(cat.Name))
		writeRow(bw, cols[:])
		bw.WriteString("|" + strings.Repeat("------|", minFields) + "\n")
		for _, t := range cat.Tools {
			writeRow(bw, []string{t.Name, t.URL, t.Icon, t.Description})
		}
	}

	return bw.Flush()
}

func writeRow(w *bufio.Writer, cells []string) {
	w.WriteString("|")
	for _, c := range cells {
		w.WriteString(" ")
		w.WriteString(escapeCell(c))
		w.WriteString(" |")
	}
	w.WriteString("\n")
}

// escapeCell keeps a value on one line and protects literal pipes.
func escapeCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
