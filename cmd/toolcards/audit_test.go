package main

import (
	"path/filepath"
	"strings"
	"testing"
)

const auditPage = `<html><body>
<img src="images/cursor-icon.png">
<img src="images/zed-icon.png">
<img src="images/cursor-icon.png">
<img src="https://cdn.example.com/remote.png">
<img src="data:image/svg+xml;base64,PHN2Zy8+">
<img src="logo.png">
</body></html>`

func TestAudit(t *testing.T) {
	t.Parallel()

	t.Run("missing images fail with exit 3", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := writeTestFile(t, dir, "index.html", auditPage)
		writeTestFile(t, dir, "images/cursor-icon.png", "png")

		env := newTestEnv()
		code := env.run("audit", "-p", page)
		if code != ExitIO {
			t.Fatalf("exit = %d, want %d (stderr: %s)", code, ExitIO, env.stderr)
		}
		stdout := env.stdout.String()
		if !strings.Contains(stdout, "missing  images/zed-icon.png") {
			t.Errorf("stdout should list the missing icon, got %q", stdout)
		}
		if strings.Contains(stdout, "logo.png") {
			t.Error("sources outside the prefix should not be checked")
		}
		if !strings.Contains(stdout, "2 images checked: 1 present, 1 missing") {
			t.Errorf("stdout summary = %q", stdout)
		}
		if !strings.Contains(env.stderr.String(), "page references missing images") {
			t.Errorf("stderr = %q", env.stderr)
		}
	})

	t.Run("all present", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := writeTestFile(t, dir, "index.html", auditPage)
		writeTestFile(t, dir, "images/cursor-icon.png", "png")
		writeTestFile(t, dir, "images/zed-icon.png", "png")

		env := newTestEnv()
		if code := env.run("audit", "--page", page); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
		}
	})

	t.Run("prefix matching nothing checks nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := writeTestFile(t, dir, "index.html", auditPage)
		writeTestFile(t, dir, "images/cursor-icon.png", "png")
		writeTestFile(t, dir, "images/zed-icon.png", "png")

		env := newTestEnv()
		code := env.run("audit", "-p", page, "--prefix", "./")
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
		}
		if !strings.Contains(env.stdout.String(), "0 images checked") {
			t.Errorf("a prefix no source has should check nothing, got %q", env.stdout)
		}
	})

	t.Run("base dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := writeTestFile(t, dir, "site/index.html", auditPage)
		writeTestFile(t, dir, "assets/images/cursor-icon.png", "png")
		writeTestFile(t, dir, "assets/images/zed-icon.png", "png")

		env := newTestEnv()
		code := env.run("audit", "-p", page, "--base-dir", filepath.Join(dir, "assets"))
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
		}
	})

	t.Run("escaping sources are reported", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := writeTestFile(t, dir, "site/index.html", `<img src="images/../../secret.png">`)
		writeTestFile(t, dir, "secret.png", "png")

		env := newTestEnv()
		if code := env.run("audit", "-p", page); code != ExitIO {
			t.Fatalf("exit = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(env.stdout.String(), "escaped  images/../../secret.png") {
			t.Errorf("stdout = %q", env.stdout)
		}
	})

	t.Run("missing page", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		code := env.run("audit", "-p", filepath.Join(t.TempDir(), "nope.html"))
		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
	})
}
