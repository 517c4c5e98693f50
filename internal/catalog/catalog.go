package catalog

// ToolRecord describes one external tool.
type ToolRecord struct {
	Name        string
	URL         string
	Icon        string // absolute URL, local relative path, data URI, or empty
	Description string
}

// Category is a named, ordered group of tools.
type Category struct {
	Name  string
	Tools []ToolRecord
}

// Catalog is the ordered list of categories built from one source document.
type Catalog struct {
	Categories []Category
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Categories)
}

// ToolCount returns the number of tools across all categories.
func (c *Catalog) ToolCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Tools)
	}
	return n
}

// Lookup returns the category with the given name.
func (c *Catalog) Lookup(name string) (*Category, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// Names returns category names in catalog order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}
