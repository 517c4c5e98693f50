package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-toolcards/internal/config"
)

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "toolcards.yaml")

	env := newTestEnv()
	if code := env.run("init", path); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "Wrote "+path) {
		t.Errorf("stdout = %q", env.stdout)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Patch.NavClass != "sidebar-nav" || len(cfg.Scrape.Categories) == 0 {
		t.Errorf("written config lost defaults: %+v", cfg.Patch)
	}

	again := newTestEnv()
	if code := again.run("init", path); code != ExitUsage {
		t.Errorf("second init exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(again.stderr.String(), "--force") {
		t.Errorf("stderr should mention --force, got %q", again.stderr)
	}

	forced := newTestEnv()
	if code := forced.run("init", "--force", path); code != ExitSuccess {
		t.Errorf("forced init exit = %d, stderr: %s", code, forced.stderr)
	}
}

func TestInit_TooManyArgs(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if code := env.run("init", "a.yaml", "b.yaml"); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}
