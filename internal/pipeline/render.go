package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-toolcards/internal/catalog"
)

// Sentinel errors for rendering.
var (
	ErrTemplateParse = errors.New("template parsing failed")
	ErrRender        = errors.New("template rendering failed")
)

// AllCategoryKey is the navigation key of the entry that shows every tool.
const AllCategoryKey = "all"

// Templates holds the html/template sources used by a Renderer.
// Section must invoke {{template "card" .}} for each of its cards.
type Templates struct {
	Section string
	Card    string
	Nav     string
}

// Labels are the fixed user-facing strings emitted by the renderer.
type Labels struct {
	NavTitle string // heading above the navigation entries
	AllLabel string // label of the show-everything entry
	Button   string // text of each card's visit button
}

// DefaultLabels returns the built-in labels.
func DefaultLabels() Labels {
	return Labels{NavTitle: "AI工具分类", AllLabel: "全部工具", Button: "访问工具"}
}

// RenderOptions configures a Renderer. Zero fields take their defaults.
type RenderOptions struct {
	Icons  *IconTable
	Image  IconOptions
	Labels Labels
}

// Renderer produces the navigation and content fragments for a catalog.
// It is safe for concurrent use.
type Renderer struct {
	section *template.Template
	nav     *template.Template
	icons   *IconTable
	image   IconOptions
	labels  Labels
}

// NewRenderer parses the templates and returns a Renderer.
func NewRenderer(tmpl Templates, opts RenderOptions) (*Renderer, error) {
	section, err := template.New("section").Parse(tmpl.Section)
	if err != nil {
		return nil, fmt.Errorf("%w: section: %v", ErrTemplateParse, err)
	}
	if _, err := section.New("card").Parse(tmpl.Card); err != nil {
		return nil, fmt.Errorf("%w: card: %v", ErrTemplateParse, err)
	}
	nav, err := template.New("nav").Parse(tmpl.Nav)
	if err != nil {
		return nil, fmt.Errorf("%w: nav: %v", ErrTemplateParse, err)
	}

	r := &Renderer{
		section: section,
		nav:     nav,
		icons:   opts.Icons,
		image:   opts.Image,
		labels:  opts.Labels,
	}
	if r.icons == nil {
		r.icons = NewIconTable(DefaultIconRules(), "")
	}
	if r.image.Placeholder == "" {
		r.image.Placeholder = DefaultPlaceholder
	}
	if r.image.StripPrefix == "" && !r.image.NoStrip {
		r.image.StripPrefix = DefaultStripPrefix
	}
	r.labels = mergeLabels(r.labels, DefaultLabels())
	return r, nil
}

func mergeLabels(l, def Labels) Labels {
	if l.NavTitle == "" {
		l.NavTitle = def.NavTitle
	}
	if l.AllLabel == "" {
		l.AllLabel = def.AllLabel
	}
	if l.Button == "" {
		l.Button = def.Button
	}
	return l
}

// Template data. Field names are the contract with template authors.
type (
	cardData struct {
		Category    string
		Name        string
		URL         string
		Icon        any // string, or template.URL for inline images
		Fallback    string
		Description string
		Button      string
	}

	sectionData struct {
		Name  string
		Icon  string
		Cards []cardData
	}

	navEntry struct {
		Key   string
		Icon  string
		Label string
	}

	navData struct {
		Title   string
		Entries []navEntry
	}
)

// Render returns the navigation fragment and the content fragment for c.
// The content fragment is one section per category, in catalog order, and
// begins with the first section's opening tag.
func (r *Renderer) Render(ctx context.Context, c *catalog.Catalog) (nav, content string, err error) {
	nav, err = r.RenderNav(c)
	if err != nil {
		return "", "", err
	}
	content, err = r.RenderContent(ctx, c)
	if err != nil {
		return "", "", err
	}
	return nav, content, nil
}

// RenderNav renders the sidebar entries: the "all" entry first, then one
// entry per category.
func (r *Renderer) RenderNav(c *catalog.Catalog) (string, error) {
	data := navData{
		Title:   r.labels.NavTitle,
		Entries: make([]navEntry, 0, c.Len()+1),
	}
	data.Entries = append(data.Entries, navEntry{
		Key:   AllCategoryKey,
		Icon:  r.icons.fallback,
		Label: r.labels.AllLabel,
	})
	for _, cat := range c.Categories {
		data.Entries = append(data.Entries, navEntry{
			Key:   cat.Name,
			Icon:  r.icons.Lookup(cat.Name),
			Label: cat.Name,
		})
	}

	var buf bytes.Buffer
	if err := r.nav.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: nav: %v", ErrRender, err)
	}
	return buf.String(), nil
}

// RenderContent renders one section per category.
func (r *Renderer) RenderContent(ctx context.Context, c *catalog.Catalog) (string, error) {
	var buf bytes.Buffer
	for _, cat := range c.Categories {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := r.section.Execute(&buf, r.sectionData(cat)); err != nil {
			return "", fmt.Errorf("%w: section %q: %v", ErrRender, cat.Name, err)
		}
	}
	return buf.String(), nil
}

func (r *Renderer) sectionData(cat catalog.Category) sectionData {
	data := sectionData{
		Name:  cat.Name,
		Icon:  r.icons.Lookup(cat.Name),
		Cards: make([]cardData, 0, len(cat.Tools)),
	}
	for _, t := range cat.Tools {
		data.Cards = append(data.Cards, cardData{
			Category:    cat.Name,
			Name:        t.Name,
			URL:         t.URL,
			Icon:        imageSource(ResolveIcon(t.Icon, r.image)),
			Fallback:    r.image.Placeholder,
			Description: t.Description,
			Button:      r.labels.Button,
		})
	}
	return data
}

// imageSource marks inline images as trusted so html/template keeps them.
func imageSource(src string) any {
	if strings.HasPrefix(strings.ToLower(src), "data:image/") {
		return template.URL(src) // #nosec G203 -- only data:image URIs reach here
	}
	return src
}
