// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-toolcards/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or drop --browser to fetch the page over plain HTTP")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the request timeout.
func ForTimeout() string {
	return format("for slow sites, raise --timeout or scrape.timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml, or run 'toolcards init'"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "/go-toolcards/") {
			hint += " and move the file to " + p
			break
		}
	}

	return format(hint)
}

// ForTargetNotFound returns hints when the page to patch cannot be read.
func ForTargetNotFound() string {
	return format("run from the site directory, or set --output / output.path")
}

// ForInputNotFound returns hints when the catalog document cannot be read.
func ForInputNotFound() string {
	return format("pass the catalog with --input, or set input.path")
}

// ForTemplateSetNotFound lists the available template sets.
func ForTemplateSetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingAnchors explains what the page must contain to be patched.
func ForMissingAnchors(navClass, sectionClass, endTag string) string {
	return format("the page needs <ul class=\"" + navClass + "\"> and <section class=\"" +
		sectionClass + "\"> followed by </" + endTag + ">; see patch.* in the config")
}

// ForEmptyCatalog returns hints when no tool rows were parsed.
func ForEmptyCatalog() string {
	return format("categories are '## ' headings followed by a table with at least 4 columns")
}

// ForDownloadFailures returns hints for a download batch with failures.
func ForDownloadFailures() string {
	return format("rerun the same command; icons already on disk are skipped")
}

// toSlash normalizes separators for substring checks.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
