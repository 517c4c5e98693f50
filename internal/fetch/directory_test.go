package fetch

import (
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDirectory_Fixture(t *testing.T) {
	t.Parallel()

	f, err := os.Open("testdata/directory.html")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	base, _ := url.Parse("https://www.qijishow.com/down/index.html")
	got, err := ParseDirectory(f, base)
	if err != nil {
		t.Fatalf("ParseDirectory() error = %v", err)
	}

	want := []Entry{
		{
			Name:        "Adobe Photoshop 2024",
			Description: "专业图像处理软件",
			Platform:    "Windows / macOS",
			Icon:        "https://www.qijishow.com/uploads/ps.png",
			Link:        "https://www.qijishow.com/down/detail/photoshop.html",
		},
		{
			Name:        "Figma",
			Description: "在线协作 UI 设计",
			Icon:        "https://cdn.example.com/figma.png",
			Link:        "https://www.figma.com/",
		},
		{
			Name: "Blender",
			Icon: "https://www.qijishow.com/down/blender.png",
		},
		{
			Name: "Notepad",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDirectory() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDirectory_NoBase(t *testing.T) {
	t.Parallel()

	page := `<div class="tool"><img src="//cdn.example.com/a.png"><div class="tool-title">A</div>` +
		`<a class="tool-heading" href="javascript:void(0)">x</a></div>`
	got, err := ParseDirectory(strings.NewReader(page), nil)
	if err != nil {
		t.Fatalf("ParseDirectory() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	if got[0].Icon != "https://cdn.example.com/a.png" {
		t.Errorf("Icon = %q, want scheme added to protocol-relative URL", got[0].Icon)
	}
	if got[0].Link != "" {
		t.Errorf("Link = %q, want javascript: link dropped", got[0].Link)
	}
}

func TestParseDirectoryWith_CustomSelectors(t *testing.T) {
	t.Parallel()

	page := `<ul><li class="app"><h3>Krita</h3><p>painting</p><a href="/krita">go</a></li></ul>`
	sel := Selectors{Item: "li.app", Title: "h3", Description: "p", Platform: ".none", Image: "img", Link: "a"}
	base, _ := url.Parse("https://apps.example.com/list")

	got, err := ParseDirectoryWith(strings.NewReader(page), base, sel)
	if err != nil {
		t.Fatalf("ParseDirectoryWith() error = %v", err)
	}
	want := []Entry{{Name: "Krita", Description: "painting", Link: "https://apps.example.com/krita"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDirectoryWith() mismatch (-want +got):\n%s", diff)
	}
}
