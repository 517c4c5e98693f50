package assets

// TemplateSet holds the html/template sources for card rendering.
type TemplateSet struct {
	Name    string // Identifier (name or directory path)
	Section string // Category section; must invoke {{template "card" .}}
	Card    string // Single tool card
	Nav     string // Sidebar navigation entries
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// templateFiles lists the files a template set directory must contain.
var templateFiles = []string{"section.html", "card.html", "nav.html"}

// TemplateLoader defines the contract for loading template sets.
// Implementations may load from embedded assets, filesystem, etc.
type TemplateLoader interface {
	// LoadTemplateSet loads a template set by name.
	// Returns ErrTemplateSetNotFound if no file of the set exists.
	// Returns ErrIncompleteTemplateSet if only some files exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// newTemplateSet builds a TemplateSet from file contents keyed by file name.
func newTemplateSet(name string, files map[string]string) *TemplateSet {
	return &TemplateSet{
		Name:    name,
		Section: files["section.html"],
		Card:    files["card.html"],
		Nav:     files["nav.html"],
	}
}
