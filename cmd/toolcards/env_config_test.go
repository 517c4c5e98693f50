package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-toolcards/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"TOOLCARDS_CONFIG":     "site",
		"TOOLCARDS_INPUT":      "in.md",
		"TOOLCARDS_OUTPUT":     "out.html",
		"TOOLCARDS_LOG_LEVEL":  "debug",
		"TOOLCARDS_SCRAPE_URL": "https://example.com/",
		"TOOLCARDS_ICON_DIR":   "icons",
		"TOOLCARDS_TIMEOUT":    "30s",
		"TOOLCARDS_WORKERS":    "3",
	}
	got := loadEnvConfig(func(k string) string { return vars[k] })

	want := envConfig{
		ConfigPath: "site",
		Input:      "in.md",
		Output:     "out.html",
		LogLevel:   "debug",
		ScrapeURL:  "https://example.com/",
		IconDir:    "icons",
		Timeout:    "30s",
		Workers:    3,
	}
	if *got != want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
	}
}

func TestLoadEnvConfig_BadWorkersIgnored(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"many", "-2", "0"} {
		got := loadEnvConfig(func(k string) string {
			if k == "TOOLCARDS_WORKERS" {
				return v
			}
			return ""
		})
		if got.Workers != 0 {
			t.Errorf("TOOLCARDS_WORKERS=%q gave %d workers, want 0", v, got.Workers)
		}
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	applyEnvConfig(&envConfig{Input: "in.md", Timeout: "30s"}, cfg)

	if cfg.Input.Path != "in.md" {
		t.Errorf("Input.Path = %q, want in.md", cfg.Input.Path)
	}
	if cfg.Scrape.Timeout != "30s" {
		t.Errorf("Scrape.Timeout = %q, want 30s", cfg.Scrape.Timeout)
	}
	if cfg.Output.Path != config.DefaultOutputPath {
		t.Errorf("unset variables must keep config values, Output.Path = %q", cfg.Output.Path)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"TOOLCARDS_INPUT=x",
		"TOOLCARDS_IMPUT=x",
		"TOOLCARDS_CONTAINER=1",
		"HOME=/root",
	})

	out := buf.String()
	if !strings.Contains(out, "TOOLCARDS_IMPUT") {
		t.Errorf("typo should be reported, got %q", out)
	}
	if strings.Contains(out, "TOOLCARDS_INPUT ") || strings.Contains(out, "HOME") || strings.Contains(out, "CONTAINER") {
		t.Errorf("only unknown TOOLCARDS_ variables should be reported, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// Precedence: flags > env > config file > defaults
// ---------------------------------------------------------------------------

func TestEnvPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("env selects paths", func(t *testing.T) {
		t.Parallel()

		_, input, output := siteFixture(t)
		env := newTestEnv()
		env.setenv(map[string]string{"TOOLCARDS_INPUT": input, "TOOLCARDS_OUTPUT": output})

		if code := env.run("generate"); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
		}
		if !strings.Contains(readTestFile(t, output), "Cursor") {
			t.Error("page from TOOLCARDS_OUTPUT should be patched")
		}
	})

	t.Run("env beats config file", func(t *testing.T) {
		t.Parallel()

		dir, input, output := siteFixture(t)
		cfg := writeTestFile(t, dir, "site.yaml", "input:\n  path: /nonexistent/catalog.md\n")
		env := newTestEnv()
		env.setenv(map[string]string{"TOOLCARDS_CONFIG": cfg, "TOOLCARDS_INPUT": input})

		if code := env.run("generate", "-o", output); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
		}
	})

	t.Run("flags beat env", func(t *testing.T) {
		t.Parallel()

		_, input, output := siteFixture(t)
		env := newTestEnv()
		env.setenv(map[string]string{"TOOLCARDS_INPUT": "/nonexistent/catalog.md"})

		if code := env.run("generate", "-i", input, "-o", output); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, env.stderr)
		}
	})

	t.Run("invalid env value is a usage error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		env.setenv(map[string]string{"TOOLCARDS_TIMEOUT": "forever"})

		code := env.run("scrape", "-n", "-u", "http://127.0.0.1:1/")
		if code != ExitUsage {
			t.Fatalf("exit = %d, want %d (stderr: %s)", code, ExitUsage, env.stderr)
		}
		if !strings.Contains(env.stderr.String(), "environment: ") {
			t.Errorf("stderr should name the environment, got %q", env.stderr)
		}
	})

	t.Run("unknown variable warns", func(t *testing.T) {
		t.Parallel()

		_, input, output := siteFixture(t)
		env := newTestEnv()
		env.setenv(map[string]string{"TOOLCARDS_OUPUT": "x"})

		if code := env.run("generate", "-n", "-i", input, "-o", output); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		want := fmt.Sprintf("unknown environment variable %s", "TOOLCARDS_OUPUT")
		if !strings.Contains(env.stderr.String(), want) {
			t.Errorf("stderr = %q", env.stderr)
		}
	})
}
