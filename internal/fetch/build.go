package fetch

import (
	"path"
	"path/filepath"

	"github.com/gosimple/slug"

	"github.com/alnah/go-toolcards/internal/catalog"
)

// iconSuffix is appended to every icon file name.
const iconSuffix = "-icon.png"

// IconFilename returns the stable local file name for a tool's icon.
func IconFilename(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "tool"
	}
	return s + iconSuffix
}

// Asset is a remote icon and the local file it is saved to.
type Asset struct {
	Name string // tool name, for reporting
	URL  string
	Path string
}

// BuildStats counts entries BuildCatalog could not use.
type BuildStats struct {
	WithoutLink int
}

// BuildCatalog groups classified entries into a catalog, categories in
// order of first appearance. Each record's icon column points at the
// local file under iconDir; the returned assets are the downloads needed
// to populate those files, one per distinct file. Entries without a link
// are left out since a catalog record needs a URL.
func BuildCatalog(items []Classified, iconDir string) (*catalog.Catalog, []Asset, BuildStats) {
	var (
		stats  BuildStats
		cat    = &catalog.Catalog{}
		index  = make(map[string]int)
		assets []Asset
		seen   = make(map[string]bool)
	)

	for _, it := range items {
		if it.Link == "" {
			stats.WithoutLink++
			continue
		}

		rec := catalog.ToolRecord{
			Name:        it.Name,
			URL:         it.Link,
			Description: describe(it.Entry),
		}
		if it.Icon != "" {
			file := IconFilename(it.Name)
			rec.Icon = path.Join(filepath.ToSlash(iconDir), file)
			local := filepath.Join(iconDir, file)
			if !seen[local] {
				seen[local] = true
				assets = append(assets, Asset{Name: it.Name, URL: it.Icon, Path: local})
			}
		}

		i, ok := index[it.Category]
		if !ok {
			i = len(cat.Categories)
			index[it.Category] = i
			cat.Categories = append(cat.Categories, catalog.Category{Name: it.Category})
		}
		cat.Categories[i].Tools = append(cat.Categories[i].Tools, rec)
	}

	return cat, assets, stats
}

func describe(e Entry) string {
	switch {
	case e.Platform == "":
		return e.Description
	case e.Description == "":
		return e.Platform
	}
	return e.Description + " (" + e.Platform + ")"
}
