package fileutil_test

// Notes:
// - The Sync, Close, and Rename error branches in WriteFileAtomic are not
//   tested because triggering those failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alnah/go-toolcards/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - All-or-nothing writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic_NewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.html")
	if err := fileutil.WriteFileAtomic(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if string(got) != "<html></html>" {
		t.Errorf("content = %q", got)
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0o644 {
			t.Errorf("perm = %o, want 644", info.Mode().Perm())
		}
	}
}

func TestWriteFileAtomic_ReplacesAndKeepsMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := fileutil.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0o600 {
			t.Errorf("perm = %o, want existing 600", info.Mode().Perm())
		}
	}
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	for i := 0; i < 3; i++ {
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory entries = %v, want only out.html", names)
	}
}

func TestWriteFileAtomic_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"empty path", "", fileutil.ErrEmptyPath},
		{"directory", dir, fileutil.ErrIsDirectory},
		{"missing parent", filepath.Join(dir, "missing", "out.html"), os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fileutil.WriteFileAtomic(tt.path, []byte("x"), 0o644)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteFileAtomic(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantFile bool
		wantDir  bool
	}{
		{"regular file", file, true, false},
		{"directory", dir, false, true},
		{"missing", filepath.Join(dir, "nope"), false, false},
		{"empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.wantFile)
			}
			if got := fileutil.DirExists(tt.path); got != tt.wantDir {
				t.Errorf("DirExists(%q) = %v, want %v", tt.path, got, tt.wantDir)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsURL
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"toolcards", false},
		{"my-config", false},
		{"./toolcards.yaml", true},
		{"../shared/toolcards.yaml", true},
		{"/etc/toolcards.yaml", true},
		{`C:\config\toolcards.yaml`, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://ai-bot.cn/", true},
		{"http://example.com", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"//cdn.example.com/a.png", false},
		{"images/a.png", false},
		{"ftp://example.com", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsUnderDir
// ---------------------------------------------------------------------------

func TestIsUnderDir(t *testing.T) {
	t.Parallel()

	base := filepath.FromSlash("/srv/site")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"direct child", filepath.FromSlash("/srv/site/images/a.png"), true},
		{"base itself", base, true},
		{"parent escape", filepath.FromSlash("/srv/site/../secret"), false},
		{"sibling prefix", filepath.FromSlash("/srv/site2/a.png"), false},
		{"dotdot-named file", filepath.FromSlash("/srv/site/..hidden"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsUnderDir(tt.path, base); got != tt.want {
				t.Errorf("IsUnderDir(%q, %q) = %v, want %v", tt.path, base, got, tt.want)
			}
		})
	}
}
