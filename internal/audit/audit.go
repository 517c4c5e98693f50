// Package audit checks that the local images referenced by a page exist.
package audit

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maruel/natural"

	"github.com/alnah/go-toolcards/internal/fileutil"
)

// DefaultPrefix limits the audit to the page's icon directory.
const DefaultPrefix = "images/"

// Options configures Check.
type Options struct {
	// Prefix keeps only sources starting with it. Empty checks every local
	// relative source.
	Prefix string
}

// Report lists distinct local image sources by state, in natural order.
type Report struct {
	Present []string
	Missing []string
	Escaped []string // sources resolving outside the base directory; not checked
	Remote  int      // sources skipped as URLs, data URIs or absolute paths
}

// Checked returns the number of sources that were looked up on disk.
func (r *Report) Checked() int {
	return len(r.Present) + len(r.Missing)
}

// OK reports whether every checked image exists and none escaped.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Escaped) == 0
}

// Check reads an HTML page and resolves every img[src] that is a local
// relative path against baseDir.
func Check(r io.Reader, baseDir string, opts Options) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}

	report := &Report{}
	seen := make(map[string]bool)

	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if !isLocalRef(src) {
			report.Remote++
			return
		}
		if opts.Prefix != "" && !strings.HasPrefix(src, opts.Prefix) {
			return
		}
		if seen[src] {
			return
		}
		seen[src] = true

		rel, ok := filePart(src)
		if !ok {
			report.Missing = append(report.Missing, src)
			return
		}
		abs := filepath.Join(absBase, filepath.FromSlash(rel))
		switch {
		case !fileutil.IsUnderDir(abs, absBase):
			report.Escaped = append(report.Escaped, src)
		case fileutil.FileExists(abs):
			report.Present = append(report.Present, src)
		default:
			report.Missing = append(report.Missing, src)
		}
	})

	for _, list := range [][]string{report.Present, report.Missing, report.Escaped} {
		sort.Sort(natural.StringSlice(list))
	}
	return report, nil
}

// isLocalRef reports whether src names a file relative to the page.
func isLocalRef(src string) bool {
	if src == "" || strings.HasPrefix(src, "#") || strings.HasPrefix(src, "//") {
		return false
	}
	lower := strings.ToLower(src)
	for _, scheme := range []string{"http:", "https:", "data:", "file:", "blob:"} {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return !strings.HasPrefix(src, "/") && !filepath.IsAbs(src)
}

// filePart strips any query or fragment and percent-decodes the path.
func filePart(src string) (string, bool) {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	p, err := url.PathUnescape(src)
	if err != nil || p == "" {
		return "", false
	}
	return p, true
}
