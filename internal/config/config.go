package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-toolcards/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDirName is the directory under the user config dir searched for
// named configs.
const AppDirName = "go-toolcards"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxURLLength         = 2048
	MaxPlaceholderLength = 8192 // inline data URIs
	MaxLabelLength       = 100
	MaxClassLength       = 100
	MaxTagLength         = 20
	MaxUserAgentLength   = 512
)

// Timeout bounds for scrape requests.
const (
	MinTimeout = time.Second
	MaxTimeout = 5 * time.Minute
)

// Config holds all configuration for catalog generation and scraping.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Parser     ParserConfig     `yaml:"parser"`
	Categories CategoriesConfig `yaml:"categories"`
	Icons      IconsConfig      `yaml:"icons"`
	Labels     LabelsConfig     `yaml:"labels"`
	Patch      PatchConfig      `yaml:"patch"`
	Assets     AssetsConfig     `yaml:"assets"`
	Scrape     ScrapeConfig     `yaml:"scrape"`
	Audit      AuditConfig      `yaml:"audit"`
	Log        LogConfig        `yaml:"log"`
}

// InputConfig defines the catalog source document.
type InputConfig struct {
	Path string `yaml:"path"` // Markdown catalog
}

// OutputConfig defines the page that is patched in place.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// ParserConfig tunes catalog parsing.
type ParserConfig struct {
	Sentinels   []string `yaml:"sentinels"`   // heading names that never form a category
	HeaderNames []string `yaml:"headerNames"` // first-column labels of header rows
}

// CategoriesConfig maps category names to icon classes.
type CategoriesConfig struct {
	Icons   []IconRule `yaml:"icons"`   // first substring match wins
	Default string     `yaml:"default"` // icon when nothing matches
}

// IconRule maps category names containing Match to Icon.
type IconRule struct {
	Match string `yaml:"match"`
	Icon  string `yaml:"icon"`
}

// IconsConfig defines how tool icon references become image sources.
type IconsConfig struct {
	Placeholder string `yaml:"placeholder"` // image for tools without an icon
	StripPrefix string `yaml:"stripPrefix"` // removed from local icon paths; empty means the default
	NoStrip     bool   `yaml:"noStrip"`     // keep local icon paths as written
}

// LabelsConfig holds the fixed user-facing strings of the rendered page.
type LabelsConfig struct {
	NavTitle string `yaml:"navTitle"`
	AllLabel string `yaml:"allLabel"`
	Button   string `yaml:"button"`
}

// PatchConfig identifies the replaced regions of the target page.
type PatchConfig struct {
	NavClass     string `yaml:"navClass"`
	SectionClass string `yaml:"sectionClass"`
	EndTag       string `yaml:"endTag"`
}

// AssetsConfig defines template loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded templates
	TemplateSet string `yaml:"templateSet"` // Name of the set under templates/
}

// ScrapeConfig defines how a tool directory page is harvested.
type ScrapeConfig struct {
	URL        string        `yaml:"url"`
	Browser    bool          `yaml:"browser"`   // render the page in headless Chrome
	UserAgent  string        `yaml:"userAgent"` // sent with every request
	Timeout    string        `yaml:"timeout"`   // per request, Go duration
	IconDir    string        `yaml:"iconDir"`   // where icons are saved
	Output     string        `yaml:"output"`    // Markdown catalog written by scrape
	Title      string        `yaml:"title"`     // level-1 title of that catalog
	Fallback   string        `yaml:"fallback"`  // category for unmatched tools; empty drops them
	Categories []KeywordRule `yaml:"categories"`
}

// KeywordRule assigns tools whose name contains any keyword to Name.
type KeywordRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// AuditConfig defines the image reference audit.
type AuditConfig struct {
	Prefix string `yaml:"prefix"` // only sources under this prefix are checked
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// TimeoutDuration returns the parsed scrape timeout.
// Call Validate first; an unparsable value yields zero.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Scrape.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks required fields, field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("%w: input.path is required", ErrInvalidConfig)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output.path is required", ErrInvalidConfig)
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"output.path", c.Output.Path, MaxPathLength},
		{"categories.default", c.Categories.Default, MaxClassLength},
		{"icons.placeholder", c.Icons.Placeholder, MaxPlaceholderLength},
		{"icons.stripPrefix", c.Icons.StripPrefix, MaxPathLength},
		{"labels.navTitle", c.Labels.NavTitle, MaxLabelLength},
		{"labels.allLabel", c.Labels.AllLabel, MaxLabelLength},
		{"labels.button", c.Labels.Button, MaxLabelLength},
		{"patch.navClass", c.Patch.NavClass, MaxClassLength},
		{"patch.sectionClass", c.Patch.SectionClass, MaxClassLength},
		{"patch.endTag", c.Patch.EndTag, MaxTagLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxLabelLength},
		{"scrape.url", c.Scrape.URL, MaxURLLength},
		{"scrape.userAgent", c.Scrape.UserAgent, MaxUserAgentLength},
		{"scrape.iconDir", c.Scrape.IconDir, MaxPathLength},
		{"scrape.output", c.Scrape.Output, MaxPathLength},
		{"scrape.title", c.Scrape.Title, MaxLabelLength},
		{"scrape.fallback", c.Scrape.Fallback, MaxLabelLength},
		{"audit.prefix", c.Audit.Prefix, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	for i, r := range c.Categories.Icons {
		if r.Match == "" || r.Icon == "" {
			return fmt.Errorf("%w: categories.icons[%d]: match and icon are required", ErrInvalidConfig, i)
		}
		if err := validateFieldLength(fmt.Sprintf("categories.icons[%d].icon", i), r.Icon, MaxClassLength); err != nil {
			return err
		}
	}

	if c.Patch.EndTag != "" && !isTagName(c.Patch.EndTag) {
		return fmt.Errorf("%w: patch.endTag: invalid tag name %q", ErrInvalidConfig, c.Patch.EndTag)
	}
	for _, f := range []struct{ field, value string }{
		{"patch.navClass", c.Patch.NavClass},
		{"patch.sectionClass", c.Patch.SectionClass},
	} {
		if strings.ContainsAny(f.value, " \t\n") {
			return fmt.Errorf("%w: %s: must be a single class name, got %q", ErrInvalidConfig, f.field, f.value)
		}
	}

	if c.Scrape.URL != "" && !fileutil.IsURL(c.Scrape.URL) {
		return fmt.Errorf("%w: scrape.url: must be an http(s) URL, got %q", ErrInvalidConfig, c.Scrape.URL)
	}
	if c.Scrape.Timeout != "" {
		d, err := time.ParseDuration(c.Scrape.Timeout)
		if err != nil {
			return fmt.Errorf("%w: scrape.timeout: %v", ErrInvalidConfig, err)
		}
		if d < MinTimeout || d > MaxTimeout {
			return fmt.Errorf("%w: scrape.timeout: must be between %s and %s, got %s", ErrInvalidConfig, MinTimeout, MaxTimeout, d)
		}
	}
	for i, r := range c.Scrape.Categories {
		if r.Name == "" || len(r.Keywords) == 0 {
			return fmt.Errorf("%w: scrape.categories[%d]: name and keywords are required", ErrInvalidConfig, i)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: log.level: invalid value %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Log.Level)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func isTagName(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.fillDefaults(DefaultConfig())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
