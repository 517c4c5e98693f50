package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads template sets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplateSet loads templates/{name}/*.html from the embedded filesystem.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	files := make(map[string]string, len(templateFiles))
	var missing []string
	for _, f := range templateFiles {
		content, err := templates.ReadFile("templates/" + name + "/" + f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, f)
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		files[f] = string(content)
	}

	if err := checkComplete(name, missing); err != nil {
		return nil, err
	}
	return newTemplateSet(name, files), nil
}

// checkComplete turns the list of missing files into the matching error.
func checkComplete(name string, missing []string) error {
	switch {
	case len(missing) == 0:
		return nil
	case len(missing) == len(templateFiles):
		return fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	default:
		return fmt.Errorf("%w: %q missing %v", ErrIncompleteTemplateSet, name, missing)
	}
}

// Compile-time interface check.
var _ TemplateLoader = (*EmbeddedLoader)(nil)
