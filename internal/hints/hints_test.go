package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(k, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		container   bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{"in CI", "true", false, "", "", true, true},
		{"in Docker", "", true, "", "", true, true},
		{"sandbox already disabled", "", true, "1", "", false, true},
		{"browser bin set", "", false, "", "/usr/bin/chromium", false, false},
		{"local run", "", false, "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			clearCIEnv(t)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint = %q, want hint prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "--browser") {
				t.Errorf("hint should mention plain HTTP fallback: %q", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"site.yaml", "/home/u/.config/go-toolcards/site.yaml"},
			want:     "/home/u/.config/go-toolcards/site.yaml",
		},
		{
			name:     "windows separators",
			searched: []string{`C:\Users\u\AppData\Roaming\go-toolcards\site.yaml`},
			want:     `AppData\Roaming\go-toolcards\site.yaml`,
		},
		{
			name:     "no user path",
			searched: []string{"site.yaml"},
			want:     "--config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hint := ForConfigNotFound(tt.searched)
			if !strings.Contains(hint, tt.want) {
				t.Errorf("ForConfigNotFound() = %q, want mention of %q", hint, tt.want)
			}
			if !strings.Contains(hint, "toolcards init") {
				t.Errorf("ForConfigNotFound() = %q, want init suggestion", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestOtherHints
// ---------------------------------------------------------------------------

func TestForTemplateSetNotFound(t *testing.T) {
	t.Parallel()

	if got := ForTemplateSetNotFound(nil); got != "" {
		t.Errorf("ForTemplateSetNotFound(nil) = %q, want empty", got)
	}
	if got := ForTemplateSetNotFound([]string{"default", "compact"}); !strings.Contains(got, "default, compact") {
		t.Errorf("ForTemplateSetNotFound() = %q", got)
	}
}

func TestForMissingAnchors(t *testing.T) {
	t.Parallel()

	got := ForMissingAnchors("sidebar-nav", "category-section", "main")
	for _, want := range []string{`<ul class="sidebar-nav">`, `<section class="category-section">`, "</main>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ForMissingAnchors() = %q, want %q", got, want)
		}
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	all := map[string]string{
		"ForTimeout":          ForTimeout(),
		"ForTargetNotFound":   ForTargetNotFound(),
		"ForInputNotFound":    ForInputNotFound(),
		"ForEmptyCatalog":     ForEmptyCatalog(),
		"ForDownloadFailures": ForDownloadFailures(),
	}
	for name, hint := range all {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s() = %q, want consistent prefix", name, hint)
		}
		if strings.Count(hint, "hint:") != 1 {
			t.Errorf("%s() = %q, want exactly one hint marker", name, hint)
		}
	}

	if format("") != "" {
		t.Error("format(\"\") should be empty")
	}
	if formatHints(nil) != "" {
		t.Error("formatHints(nil) should be empty")
	}
}
