package pipeline

import "strings"

// DefaultCategoryIcon is used when no rule matches a category name.
const DefaultCategoryIcon = "fas fa-th-large"

// DefaultPlaceholder is the inline image shown for tools without an icon
// and when a referenced icon fails to load.
const DefaultPlaceholder = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNTAiIGhlaWdodD0iNTAiIHZpZXdCb3g9IjAgMCA1MCA1MCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iNTAiIGhlaWdodD0iNTAiIGZpbGw9IiMxZjM0NjAiLz48cGF0aCBkPSJNMjUgNEwyNSA0NkwyNSA0eiIgZmlsbD0iI2U5NDU2MCIgc3Ryb2tlPSIjZmZmZmZmIiBzdHJva2Utd2lkdGg9IjIiLz48L3N2Zz4="

// DefaultStripPrefix is the redundant directory prefix removed from local
// icon paths; pages are served from inside that directory.
const DefaultStripPrefix = "hysaitool/"

// IconRule maps category names containing Match to an icon class.
type IconRule struct {
	Match string
	Icon  string
}

// DefaultIconRules returns the built-in category icon table.
func DefaultIconRules() []IconRule {
	return []IconRule{
		{Match: "热门推荐工具", Icon: "fas fa-fire"},
		{Match: "AI办公工具", Icon: "fas fa-briefcase"},
		{Match: "AI效率提升", Icon: "fas fa-rocket"},
		{Match: "AI编程工具", Icon: "fas fa-code"},
		{Match: "AI写作工具", Icon: "fas fa-pen-fancy"},
		{Match: "AI图像工具", Icon: "fas fa-image"},
		{Match: "其他工具", Icon: "fas fa-tools"},
		{Match: "AI搜索工具", Icon: "fas fa-search"},
		{Match: "AI教育工具", Icon: "fas fa-graduation-cap"},
		{Match: "AI模型", Icon: "fas fa-brain"},
		{Match: "AI评测工具", Icon: "fas fa-chart-line"},
		{Match: "AI提示词工具", Icon: "fas fa-keyboard"},
	}
}

// IconTable resolves category names to icon classes. Rules are tried in
// order and the first substring match wins.
type IconTable struct {
	rules    []IconRule
	fallback string
}

// NewIconTable creates an IconTable. An empty fallback means DefaultCategoryIcon.
// Rules with an empty Match are ignored.
func NewIconTable(rules []IconRule, fallback string) *IconTable {
	if fallback == "" {
		fallback = DefaultCategoryIcon
	}
	kept := make([]IconRule, 0, len(rules))
	for _, r := range rules {
		if r.Match != "" {
			kept = append(kept, r)
		}
	}
	return &IconTable{rules: kept, fallback: fallback}
}

// Lookup returns the icon class for a category name.
func (t *IconTable) Lookup(category string) string {
	for _, r := range t.rules {
		if strings.Contains(category, r.Match) {
			return r.Icon
		}
	}
	return t.fallback
}

// IconOptions controls how record icon references become image sources.
type IconOptions struct {
	Placeholder string // empty means DefaultPlaceholder
	StripPrefix string // removed once from the front of local paths; empty means DefaultStripPrefix
	NoStrip     bool   // keep local paths as written
}

// DefaultIconOptions returns the built-in icon resolution settings.
func DefaultIconOptions() IconOptions {
	return IconOptions{Placeholder: DefaultPlaceholder, StripPrefix: DefaultStripPrefix}
}

func (o IconOptions) stripPrefix() string {
	switch {
	case o.NoStrip:
		return ""
	case o.StripPrefix == "":
		return DefaultStripPrefix
	}
	return o.StripPrefix
}

func (o IconOptions) placeholder() string {
	if o.Placeholder == "" {
		return DefaultPlaceholder
	}
	return o.Placeholder
}

// ResolveIcon turns an icon reference into an image source:
//   - empty: the placeholder
//   - http://, https://, protocol-relative //: unchanged
//   - data:image/ URIs: unchanged
//   - anything else is a local path with StripPrefix removed if present
func ResolveIcon(ref string, opts IconOptions) string {
	switch {
	case ref == "":
		return opts.placeholder()
	case isRemote(ref), isInlineImage(ref):
		return ref
	case opts.stripPrefix() != "":
		return strings.TrimPrefix(ref, opts.stripPrefix())
	}
	return ref
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(ref, "//")
}

func isInlineImage(ref string) bool {
	return strings.HasPrefix(strings.ToLower(ref), "data:image/")
}
