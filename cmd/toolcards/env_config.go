package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-toolcards/internal/config"
)

// envPrefix starts every variable toolcards reads.
const envPrefix = "TOOLCARDS_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TOOLCARDS_CONFIG: config file name or path
	Input      string // TOOLCARDS_INPUT: catalog document
	Output     string // TOOLCARDS_OUTPUT: page patched in place
	LogLevel   string // TOOLCARDS_LOG_LEVEL: debug, info, warn, error

	ScrapeURL string // TOOLCARDS_SCRAPE_URL: directory page to harvest
	IconDir   string // TOOLCARDS_ICON_DIR: where icons are saved
	Timeout   string // TOOLCARDS_TIMEOUT: per-request timeout
	Workers   int    // TOOLCARDS_WORKERS: parallel downloads
}

// knownEnvVars lists valid TOOLCARDS_* environment variables.
var knownEnvVars = map[string]bool{
	"TOOLCARDS_CONFIG":     true,
	"TOOLCARDS_INPUT":      true,
	"TOOLCARDS_OUTPUT":     true,
	"TOOLCARDS_LOG_LEVEL":  true,
	"TOOLCARDS_SCRAPE_URL": true,
	"TOOLCARDS_ICON_DIR":   true,
	"TOOLCARDS_TIMEOUT":    true,
	"TOOLCARDS_WORKERS":    true,
	"TOOLCARDS_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads the recognized TOOLCARDS_* values through getenv.
// Unparsable worker counts are ignored; the timeout is kept as text and
// checked by config validation.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TOOLCARDS_CONFIG"),
		Input:      getenv("TOOLCARDS_INPUT"),
		Output:     getenv("TOOLCARDS_OUTPUT"),
		LogLevel:   getenv("TOOLCARDS_LOG_LEVEL"),
		ScrapeURL:  getenv("TOOLCARDS_SCRAPE_URL"),
		IconDir:    getenv("TOOLCARDS_ICON_DIR"),
		Timeout:    getenv("TOOLCARDS_TIMEOUT"),
	}
	if workers := getenv("TOOLCARDS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars reports TOOLCARDS_* variables nobody reads, which
// are usually typos.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are merged afterwards, giving: CLI flags > env vars > config file
// > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Input.Path, env.Input)
	set(&cfg.Output.Path, env.Output)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Scrape.URL, env.ScrapeURL)
	set(&cfg.Scrape.IconDir, env.IconDir)
	set(&cfg.Scrape.Timeout, env.Timeout)
}
