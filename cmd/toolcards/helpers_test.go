package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// testEnv is an Environment whose output is captured.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv() *testEnv {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now:     func() time.Time { return fixed },
			Stdout:  &stdout,
			Stderr:  &stderr,
			Getenv:  func(string) string { return "" },
			Environ: func() []string { return nil },
			Logger:  zap.NewNop(),
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

// setenv makes vars the whole process environment seen by the command.
func (e *testEnv) setenv(vars map[string]string) {
	e.Getenv = func(k string) string { return vars[k] }
	e.Environ = func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
}

// run invokes runMain with the program name prepended.
func (e *testEnv) run(args ...string) int {
	return runMain(append([]string{"toolcards"}, args...), e.Environment)
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

const testCatalog = `# AI工具集分类整理

## 💻 AI编程工具

| 工具名称 | 链接 | 图标 | 描述 |
|---------|------|------|------|
| Cursor | https://cursor.com | images/cursor-icon.png | AI 代码编辑器 |
| Zed | https://zed.dev |  | 编辑器 |
`

const testPage = `<html><body>
<ul class="sidebar-nav"><li>old</li></ul>
<main>
<section class="category-section" data-category="old"></section>
</main>
<footer>kept</footer>
</body></html>
`

// siteFixture writes a catalog and page into a temp dir.
func siteFixture(t *testing.T) (dir, input, output string) {
	t.Helper()
	dir = t.TempDir()
	return dir, writeTestFile(t, dir, "catalog.md", testCatalog), writeTestFile(t, dir, "index.html", testPage)
}
