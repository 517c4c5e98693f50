package catalog

import (
	"strings"
)

// Default values for parser options, matching the layout of the AI tool
// directory documents.
var (
	DefaultSentinels   = []string{"---", "AI工具集分类整理"}
	DefaultHeaderNames = []string{"工具名称"}
)

// minFields is the number of columns a data row needs: name, url, icon, description.
const minFields = 4

// Options configures the parser.
type Options struct {
	// Sentinels are cleaned heading names that never form a category
	// (document title banners, separators).
	Sentinels []string

	// HeaderNames are first-column labels identifying a header row. Header
	// rows found inside a table body are skipped as well.
	HeaderNames []string
}

// DefaultOptions returns the options used by Parse.
func DefaultOptions() Options {
	return Options{
		Sentinels:   append([]string(nil), DefaultSentinels...),
		HeaderNames: append([]string(nil), DefaultHeaderNames...),
	}
}

// Stats summarizes what the parser accepted and skipped.
type Stats struct {
	Blocks           int // heading blocks seen
	SkippedBlocks    int // blocks with an empty or sentinel name
	EmptyCategories  int // blocks that yielded no records
	Rows             int // data rows accepted
	SkippedRows      int // data rows rejected (short, empty name or url)
	DuplicatesMerged int // headings merged into an earlier category of the same name
}

// parseState is the position of the line scanner relative to table structure.
type parseState int

const (
	seekingHeading parseState = iota
	inTableHeader
	inTableBody
)

// Parser turns source documents into catalogs. It is stateless between calls.
type Parser struct {
	sentinels   map[string]struct{}
	headerNames []string
}

// NewParser creates a Parser with the given options.
func NewParser(opts Options) *Parser {
	p := &Parser{
		sentinels:   make(map[string]struct{}, len(opts.Sentinels)),
		headerNames: opts.HeaderNames,
	}
	for _, s := range opts.Sentinels {
		p.sentinels[s] = struct{}{}
	}
	return p
}

// Parse parses text with DefaultOptions.
func Parse(text string) (*Catalog, Stats) {
	return NewParser(DefaultOptions()).Parse(text)
}

// block accumulates records for the heading currently being scanned.
// A nil block means the current heading was skipped.
type block struct {
	name  string
	tools []ToolRecord
}

// Parse scans text line by line and builds a Catalog. It never fails.
//
// Duplicate headings are merged: records from a later block are appended to
// the earlier category with the same name, which keeps its position.
func (p *Parser) Parse(text string) (*Catalog, Stats) {
	var (
		stats   Stats
		state   = seekingHeading
		current *block
		blocks  []*block
	)

	for _, line := range strings.Split(normalizeLineEndings(text), "\n") {
		line = strings.TrimSpace(line)

		if title, ok := headingTitle(line); ok {
			stats.Blocks++
			state = inTableHeader
			name := CleanHeading(title)
			if p.isSentinel(name) {
				stats.SkippedBlocks++
				current = nil
				continue
			}
			current = &block{name: name}
			blocks = append(blocks, current)
			continue
		}

		if state == seekingHeading || !strings.HasPrefix(line, "|") {
			continue
		}

		fields := splitRow(line)
		if isDelimiterRow(fields) {
			state = inTableBody
			continue
		}
		if state == inTableHeader || p.isHeaderRow(fields) {
			continue
		}
		if current == nil {
			continue
		}

		rec, ok := recordFromFields(fields)
		if !ok {
			stats.SkippedRows++
			continue
		}
		stats.Rows++
		current.tools = append(current.tools, rec)
	}

	return assemble(blocks, &stats), stats
}

// assemble drops empty blocks and merges duplicates in first-seen order.
func assemble(blocks []*block, stats *Stats) *Catalog {
	cat := &Catalog{}
	index := make(map[string]int, len(blocks))

	for _, b := range blocks {
		if len(b.tools) == 0 {
			stats.EmptyCategories++
			continue
		}
		if i, seen := index[b.name]; seen {
			cat.Categories[i].Tools = append(cat.Categories[i].Tools, b.tools...)
			stats.DuplicatesMerged++
			continue
		}
		index[b.name] = len(cat.Categories)
		cat.Categories = append(cat.Categories, Category{Name: b.name, Tools: b.tools})
	}

	return cat
}

func (p *Parser) isSentinel(name string) bool {
	if name == "" {
		return true
	}
	_, ok := p.sentinels[name]
	return ok
}

func (p *Parser) isHeaderRow(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, h := range p.headerNames {
		if h != "" && strings.HasPrefix(fields[0], h) {
			return true
		}
	}
	return false
}

// recordFromFields builds a ToolRecord from a split row.
func recordFromFields(fields []string) (ToolRecord, bool) {
	if len(fields) < minFields {
		return ToolRecord{}, false
	}

	rec := ToolRecord{
		Name:        fields[0],
		URL:         cellLink(fields[1]),
		Icon:        cellLink(fields[2]),
		Description: fields[3],
	}
	if rec.Name == "" || rec.URL == "" {
		return ToolRecord{}, false
	}
	return rec, true
}

// headingTitle reports whether line is a level-2 heading and returns its raw
// title with any closing sequence removed. Unlike CommonMark, the space after
// "##" is optional.
func headingTitle(line string) (string, bool) {
	if !strings.HasPrefix(line, "##") || strings.HasPrefix(line, "###") {
		return "", false
	}
	title := strings.TrimSpace(line[2:])

	// Closing sequence: "## Title ##"
	if trimmed := strings.TrimRight(title, "#"); trimmed != title {
		if trimmed == "" || strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			title = strings.TrimSpace(trimmed)
		}
	}
	return title, true
}

// splitRow splits a pipe table row into trimmed fields. The empty fields
// produced by the leading and trailing pipes are dropped; "\|" is a literal
// pipe inside a cell.
func splitRow(line string) []string {
	var (
		fields []string
		cell   strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case c == '|':
			fields = append(fields, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cell.String()))

	if len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
	}
	if len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// isDelimiterRow reports whether fields form a table delimiter row such as
// |---|:---:|---|.
func isDelimiterRow(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !strings.Contains(f, "-") {
			return false
		}
		if strings.Trim(f, "-: ") != "" {
			return false
		}
	}
	return true
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
