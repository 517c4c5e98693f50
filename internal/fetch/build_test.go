package fetch

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-toolcards/internal/catalog"
)

func TestIconFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Figma", "figma-icon.png"},
		{"Adobe XD", "adobe-xd-icon.png"},
		{"3ds Max", "3ds-max-icon.png"},
		{"Cinema 4D / R25", "cinema-4d-r25-icon.png"},
		{"???", "tool-icon.png"},
	}

	for _, tt := range tests {
		if got := IconFilename(tt.name); got != tt.want {
			t.Errorf("IconFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if IconFilename("剪映") != IconFilename("剪映") {
		t.Error("IconFilename() is not stable")
	}
	if got := IconFilename("剪映"); strings.ContainsAny(got, "/\\ ") || !strings.HasSuffix(got, iconSuffix) {
		t.Errorf("IconFilename(CJK) = %q, want a safe file name", got)
	}
}

func TestBuildCatalog(t *testing.T) {
	t.Parallel()

	items := []Classified{
		{Entry: Entry{Name: "Figma", Link: "https://figma.com", Icon: "https://cdn/figma.png", Description: "UI"}, Category: "UI设计"},
		{Entry: Entry{Name: "Photoshop", Link: "https://adobe.com/ps", Platform: "Windows"}, Category: "图形设计"},
		{Entry: Entry{Name: "Figma", Link: "https://figma.com/proto", Icon: "https://cdn/figma2.png"}, Category: "原型设计"},
		{Entry: Entry{Name: "Orphan", Icon: "https://cdn/o.png"}, Category: "UI设计"},
	}

	cat, assets, stats := BuildCatalog(items, "images")

	want := &catalog.Catalog{Categories: []catalog.Category{
		{Name: "UI设计", Tools: []catalog.ToolRecord{
			{Name: "Figma", URL: "https://figma.com", Icon: "images/figma-icon.png", Description: "UI"},
		}},
		{Name: "图形设计", Tools: []catalog.ToolRecord{
			{Name: "Photoshop", URL: "https://adobe.com/ps", Description: "Windows"},
		}},
		{Name: "原型设计", Tools: []catalog.ToolRecord{
			{Name: "Figma", URL: "https://figma.com/proto", Icon: "images/figma-icon.png"},
		}},
	}}
	if diff := cmp.Diff(want, cat); diff != "" {
		t.Errorf("BuildCatalog() catalog mismatch (-want +got):\n%s", diff)
	}

	wantAssets := []Asset{{Name: "Figma", URL: "https://cdn/figma.png", Path: filepath.Join("images", "figma-icon.png")}}
	if diff := cmp.Diff(wantAssets, assets); diff != "" {
		t.Errorf("BuildCatalog() assets mismatch (-want +got):\n%s", diff)
	}
	if stats.WithoutLink != 1 {
		t.Errorf("WithoutLink = %d, want 1", stats.WithoutLink)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		e    Entry
		want string
	}{
		{Entry{Description: "d"}, "d"},
		{Entry{Platform: "Mac"}, "Mac"},
		{Entry{Description: "d", Platform: "Mac"}, "d (Mac)"},
		{Entry{}, ""},
	}
	for _, tt := range tests {
		if got := describe(tt.e); got != tt.want {
			t.Errorf("describe(%+v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}
