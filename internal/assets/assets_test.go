package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSet creates templates/{name}/ under base with the given files.
func writeSet(t *testing.T, base, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(base, "templates", name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("creating template dir: %v", err)
	}
	for f, content := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", f, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_Default(t *testing.T) {
	t.Parallel()

	ts, err := NewEmbeddedLoader().LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet() error = %v", err)
	}

	checks := map[string]struct {
		content string
		marker  string
	}{
		"section": {ts.Section, `{{template "card" .}}`},
		"card":    {ts.Card, `class="tool-card"`},
		"nav":     {ts.Nav, `class="nav-link"`},
	}
	for name, c := range checks {
		if !strings.Contains(c.content, c.marker) {
			t.Errorf("%s template missing %q", name, c.marker)
		}
	}
}

func TestEmbeddedLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setName string
		wantErr error
	}{
		{"unknown set", "nonexistent", ErrTemplateSetNotFound},
		{"empty name", "", ErrInvalidAssetName},
		{"traversal", "../default", ErrInvalidAssetName},
		{"dotted", "default.v2", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewEmbeddedLoader().LoadTemplateSet(tt.setName)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadTemplateSet(%q) error = %v, want %v", tt.setName, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader_InvalidBase(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, base := range []string{"", filepath.Join(t.TempDir(), "missing"), file} {
		if _, err := NewFilesystemLoader(base); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(%q) error = %v, want ErrInvalidBasePath", base, err)
		}
	}
}

func TestFilesystemLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeSet(t, base, "complete", map[string]string{
		"section.html": "S", "card.html": "C", "nav.html": "N",
	})
	writeSet(t, base, "partial", map[string]string{"card.html": "C"})

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	ts, err := loader.LoadTemplateSet("complete")
	if err != nil {
		t.Fatalf("LoadTemplateSet(complete) error = %v", err)
	}
	if ts.Section != "S" || ts.Card != "C" || ts.Nav != "N" {
		t.Errorf("LoadTemplateSet(complete) = %+v", ts)
	}

	if _, err := loader.LoadTemplateSet("partial"); !errors.Is(err, ErrIncompleteTemplateSet) {
		t.Errorf("LoadTemplateSet(partial) error = %v, want ErrIncompleteTemplateSet", err)
	}
	if _, err := loader.LoadTemplateSet("absent"); !errors.Is(err, ErrTemplateSetNotFound) {
		t.Errorf("LoadTemplateSet(absent) error = %v, want ErrTemplateSetNotFound", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeSet(t, outside, "evil", map[string]string{
		"section.html": "S", "card.html": "C", "nav.html": "N",
	})

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "templates"), 0o750); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "templates", "evil")
	if err := os.Symlink(filepath.Join(outside, "templates", "evil"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadTemplateSet("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTemplateSet(evil) error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolver
// ---------------------------------------------------------------------------

func TestResolver(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeSet(t, base, "default", map[string]string{
		"section.html": "custom-section", "card.html": "custom-card", "nav.html": "custom-nav",
	})
	writeSet(t, base, "broken", map[string]string{"nav.html": "N"})

	r, err := NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	if !r.HasCustomLoader() {
		t.Error("HasCustomLoader() = false, want true")
	}

	ts, err := r.LoadTemplateSet("default")
	if err != nil {
		t.Fatalf("LoadTemplateSet(default) error = %v", err)
	}
	if ts.Card != "custom-card" {
		t.Errorf("custom set not preferred: Card = %q", ts.Card)
	}

	if _, err := r.LoadTemplateSet("broken"); !errors.Is(err, ErrIncompleteTemplateSet) {
		t.Errorf("LoadTemplateSet(broken) error = %v, want ErrIncompleteTemplateSet", err)
	}

	embeddedOnly, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") error = %v", err)
	}
	ts, err = embeddedOnly.LoadTemplateSet("default")
	if err != nil {
		t.Fatalf("embedded LoadTemplateSet() error = %v", err)
	}
	if !strings.Contains(ts.Card, "tool-card") {
		t.Error("embedded fallback did not return the built-in card template")
	}
}
