package toolcards

import (
	"go.uber.org/zap"

	"github.com/alnah/go-toolcards/internal/catalog"
	"github.com/alnah/go-toolcards/internal/pipeline"
)

// Data model.
type (
	// ToolRecord is one tool: name and url are always set.
	ToolRecord = catalog.ToolRecord
	// Category is a named, ordered group of tools.
	Category = catalog.Category
	// Catalog is the ordered list of non-empty categories.
	Catalog = catalog.Catalog
	// ParseStats counts what the parser accepted and skipped.
	ParseStats = catalog.Stats
	// PatchReport tells which page regions were replaced.
	PatchReport = pipeline.PatchReport
)

// Tuning knobs of the individual stages.
type (
	// ParseOptions sets heading sentinels and table header labels.
	ParseOptions = catalog.Options
	// IconRule maps category names containing Match to an icon class.
	IconRule = pipeline.IconRule
	// IconOptions controls how tool icon references become image sources.
	IconOptions = pipeline.IconOptions
	// Labels are the fixed strings of the rendered page.
	Labels = pipeline.Labels
	// Anchors identify the replaced regions of the page.
	Anchors = pipeline.Anchors
)

// Fragments are the two rendered pieces spliced into the page.
type Fragments struct {
	Navigation string // children of the sidebar list
	Content    string // category sections, starting with the first section tag
}

// Config describes one pipeline run.
type Config struct {
	InputPath  string // Markdown catalog
	OutputPath string // page patched in place

	// CategoryIcons replaces the generator's icon rules for this run when
	// non-nil.
	CategoryIcons []IconRule

	// DryRun renders and patches in memory without writing the page.
	DryRun bool
}

// Result is the outcome of Run.
type Result struct {
	Catalog   *Catalog
	Stats     ParseStats
	Fragments Fragments
	Report    PatchReport
	Warnings  []string // missing or ambiguous anchors
	Page      string   // patched page content
	Changed   bool     // Page differs from the page on disk
	Written   bool     // Page was written to OutputPath
}

// Option configures a Generator.
type Option func(*generatorConfig)

// generatorConfig holds options collected before the generator is built.
type generatorConfig struct {
	logger      *zap.Logger
	assetPath   string
	templateSet string
	parse       *ParseOptions
	iconRules   []IconRule
	defaultIcon string
	iconsSet    bool
	image       IconOptions
	labels      Labels
	anchors     Anchors
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *generatorConfig) {
		c.logger = l
	}
}

// WithAssetPath loads templates from dir, falling back to the embedded set.
func WithAssetPath(dir string) Option {
	return func(c *generatorConfig) {
		c.assetPath = dir
	}
}

// WithTemplateSet selects a template set by name.
func WithTemplateSet(name string) Option {
	return func(c *generatorConfig) {
		c.templateSet = name
	}
}

// WithParseOptions replaces the parser's sentinels and header labels.
func WithParseOptions(opts ParseOptions) Option {
	return func(c *generatorConfig) {
		c.parse = &opts
	}
}

// WithIconRules replaces the category icon table. An empty fallback keeps
// the built-in default icon.
func WithIconRules(rules []IconRule, fallback string) Option {
	return func(c *generatorConfig) {
		c.iconRules = rules
		c.defaultIcon = fallback
		c.iconsSet = true
	}
}

// WithIconOptions sets the placeholder image and the stripped path prefix.
func WithIconOptions(opts IconOptions) Option {
	return func(c *generatorConfig) {
		c.image = opts
	}
}

// WithLabels sets the navigation title, the show-all label and the card button text.
// Empty fields keep their defaults.
func WithLabels(l Labels) Option {
	return func(c *generatorConfig) {
		c.labels = l
	}
}

// WithPatchAnchors sets the classes and end tag that locate page regions.
// Empty fields keep their defaults.
func WithPatchAnchors(a Anchors) Option {
	return func(c *generatorConfig) {
		c.anchors = a
	}
}
