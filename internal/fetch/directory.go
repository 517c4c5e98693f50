package fetch

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Entry is one tool listed on a directory page.
type Entry struct {
	Name        string
	Description string
	Platform    string
	Icon        string // absolute icon URL, or empty
	Link        string // absolute tool URL, or empty
}

// Selectors locating tool entries on a directory page.
type Selectors struct {
	Item        string
	Title       string
	Description string
	Platform    string
	Image       string
	Link        string
}

// DefaultSelectors matches the markup of the qijishow tool directory.
func DefaultSelectors() Selectors {
	return Selectors{
		Item:        "div.tool",
		Title:       ".tool-title",
		Description: ".tool-body",
		Platform:    ".tool-platform",
		Image:       "img",
		Link:        "a.tool-heading",
	}
}

// ParseDirectory extracts entries from a directory page with DefaultSelectors.
func ParseDirectory(r io.Reader, base *url.URL) ([]Entry, error) {
	return ParseDirectoryWith(r, base, DefaultSelectors())
}

// ParseDirectoryWith extracts entries in document order. Items without a
// title are skipped. Icon and link references are resolved against base;
// icons come from the lazy-load data-src attribute, then src.
func ParseDirectoryWith(r io.Reader, base *url.URL, sel Selectors) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing directory page: %w", err)
	}

	var entries []Entry
	doc.Find(sel.Item).Each(func(_ int, item *goquery.Selection) {
		name := squash(item.Find(sel.Title).First().Text())
		if name == "" {
			return
		}

		e := Entry{
			Name:        name,
			Description: squash(item.Find(sel.Description).First().Text()),
			Platform:    squash(item.Find(sel.Platform).First().Text()),
		}

		img := item.Find(sel.Image).First()
		if src, ok := img.Attr("data-src"); ok && strings.TrimSpace(src) != "" {
			e.Icon = resolve(base, src)
		} else if src, ok := img.Attr("src"); ok && !strings.HasPrefix(src, "data:") {
			e.Icon = resolve(base, src)
		}

		if href, ok := item.Find(sel.Link).First().Attr("href"); ok {
			e.Link = resolve(base, href)
		}

		entries = append(entries, e)
	})

	return entries, nil
}

// resolve makes ref absolute against base. Unparsable references and
// fragment-only or javascript: links resolve to "".
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(strings.ToLower(ref), "javascript:") {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme == "" && strings.HasPrefix(ref, "//") {
		u.Scheme = "https"
	}
	return u.String()
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
