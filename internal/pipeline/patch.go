package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Anchors identify the regions of the target page that are replaced.
type Anchors struct {
	NavClass     string // class of the <ul> whose children are the navigation
	SectionClass string // class of the <section> that starts the content region
	EndTag       string // closing tag that ends the content region
}

// DefaultAnchors returns the anchors of the stock directory page.
func DefaultAnchors() Anchors {
	return Anchors{NavClass: "sidebar-nav", SectionClass: "category-section", EndTag: "main"}
}

// PatchReport tells which regions were found and replaced.
type PatchReport struct {
	NavReplaced     bool
	ContentReplaced bool
	NavAnchors      int  // matching <ul> elements in the document
	SectionAnchors  int  // matching <section> elements in the document
	EndMarkerFound  bool // closing EndTag after the first section
	Overlap         bool // regions overlapped; content was left untouched
}

// Complete reports whether both regions were replaced.
func (r PatchReport) Complete() bool {
	return r.NavReplaced && r.ContentReplaced
}

// Warnings describes anchors that were missing or ambiguous.
func (r PatchReport) Warnings(a Anchors) []string {
	var w []string
	switch {
	case r.NavAnchors == 0:
		w = append(w, fmt.Sprintf("navigation anchor <ul class=%q> not found", a.NavClass))
	case !r.NavReplaced:
		w = append(w, fmt.Sprintf("navigation anchor <ul class=%q> is never closed", a.NavClass))
	case r.NavAnchors > 1:
		w = append(w, fmt.Sprintf("%d navigation anchors found; only the first was replaced", r.NavAnchors))
	}
	switch {
	case r.SectionAnchors == 0:
		w = append(w, fmt.Sprintf("content anchor <section class=%q> not found", a.SectionClass))
	case !r.EndMarkerFound:
		w = append(w, fmt.Sprintf("content end marker </%s> not found after the first section", a.EndTag))
	case r.Overlap:
		w = append(w, "navigation and content regions overlap; content left unchanged")
	}
	return w
}

// Patcher replaces the navigation and content regions of a page.
//
// The page is tokenized to locate the regions, and the replacement is done
// on byte offsets, so everything outside the two regions is preserved
// exactly, including formatting, comments and attribute order.
type Patcher struct {
	anchors Anchors
}

// NewPatcher creates a Patcher. Empty anchor fields take their defaults.
func NewPatcher(a Anchors) *Patcher {
	def := DefaultAnchors()
	if a.NavClass == "" {
		a.NavClass = def.NavClass
	}
	if a.SectionClass == "" {
		a.SectionClass = def.SectionClass
	}
	if a.EndTag == "" {
		a.EndTag = def.EndTag
	}
	a.EndTag = strings.ToLower(a.EndTag)
	return &Patcher{anchors: a}
}

// Anchors returns the anchors in use.
func (p *Patcher) Anchors() Anchors {
	return p.anchors
}

// span is a half-open byte range [start, end) of the document.
type span struct {
	start, end int
	text       string
}

// Patch returns doc with the navigation children replaced by nav and the
// content region replaced by content. Missing regions are left unchanged
// and reported. Patching twice with the same fragments is a no-op the
// second time, since content begins with the section anchor.
func (p *Patcher) Patch(doc, nav, content string) (string, PatchReport) {
	loc := p.locate(doc)
	report := PatchReport{
		NavAnchors:     loc.navAnchors,
		SectionAnchors: loc.sectionAnchors,
		EndMarkerFound: loc.contentEnd >= 0,
	}

	var edits []span
	if loc.navStart >= 0 && loc.navEnd >= 0 {
		edits = append(edits, span{loc.navStart, loc.navEnd, nav})
		report.NavReplaced = true
	}
	if loc.contentStart >= 0 && loc.contentEnd >= 0 {
		c := span{loc.contentStart, loc.contentEnd, content}
		if report.NavReplaced && overlaps(edits[0], c) {
			report.Overlap = true
		} else {
			edits = append(edits, c)
			report.ContentReplaced = true
		}
	}

	return splice(doc, edits), report
}

func overlaps(a, b span) bool {
	return a.start < b.end && b.start < a.end
}

// splice applies non-overlapping edits to doc.
func splice(doc string, edits []span) string {
	if len(edits) == 0 {
		return doc
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var b strings.Builder
	b.Grow(len(doc))
	prev := 0
	for _, e := range edits {
		b.WriteString(doc[prev:e.start])
		b.WriteString(e.text)
		prev = e.end
	}
	b.WriteString(doc[prev:])
	return b.String()
}

// locations holds byte offsets found in the document; -1 means not found.
type locations struct {
	navStart, navEnd         int // inner range of the navigation list
	contentStart, contentEnd int // first section start to end marker start
	navAnchors               int
	sectionAnchors           int
}

// locate walks the token stream, tracking the byte offset of each token.
// Raw token lengths always sum to the consumed input length.
func (p *Patcher) locate(doc string) locations {
	loc := locations{navStart: -1, navEnd: -1, contentStart: -1, contentEnd: -1}
	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		offset   int
		navDepth int // open <ul> elements inside the navigation list
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return loc
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)

			if tag == "ul" {
				if navDepth > 0 {
					navDepth++
				}
				if hasAttr && hasClass(z, p.anchors.NavClass) {
					loc.navAnchors++
					if loc.navStart < 0 {
						loc.navStart = offset
						navDepth = 1
					}
				}
				continue
			}

			if tag == "section" && hasAttr && hasClass(z, p.anchors.SectionClass) {
				loc.sectionAnchors++
				if loc.contentStart < 0 {
					loc.contentStart = start
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)

			if tag == "ul" && navDepth > 0 {
				navDepth--
				if navDepth == 0 {
					loc.navEnd = start
				}
			}
			if tag == p.anchors.EndTag && loc.contentStart >= 0 && loc.contentEnd < 0 {
				loc.contentEnd = start
			}
		}
	}
}

// hasClass consumes the attributes of the current tag and reports whether
// its class list contains class.
func hasClass(z *html.Tokenizer, class string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == class {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}
