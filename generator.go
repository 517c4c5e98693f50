package toolcards

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-toolcards/internal/assets"
	"github.com/alnah/go-toolcards/internal/catalog"
	"github.com/alnah/go-toolcards/internal/fileutil"
	"github.com/alnah/go-toolcards/internal/pipeline"
)

// outputPerm is the mode of a newly created page. Existing pages keep theirs.
const outputPerm = 0o644

// Generator runs the catalog-to-page pipeline.
// It holds no per-run state and is safe for concurrent use.
type Generator struct {
	logger    *zap.Logger
	parser    *catalog.Parser
	templates pipeline.Templates
	renderer  *pipeline.Renderer
	render    pipeline.RenderOptions
	fallback  string // icon for categories no rule matches
	patcher   *pipeline.Patcher
}

// NewGenerator creates a Generator with the given options.
//
// Templates are loaded and parsed here, so a broken template set fails
// before any file is read.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := &generatorConfig{
		image: pipeline.DefaultIconOptions(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver, err := assets.NewResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	setName := cfg.templateSet
	if setName == "" {
		setName = assets.DefaultTemplateSetName
	}
	ts, err := resolver.LoadTemplateSet(setName)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", setName, err)
	}

	parseOpts := catalog.DefaultOptions()
	if cfg.parse != nil {
		parseOpts = *cfg.parse
	}

	rules := pipeline.DefaultIconRules()
	if cfg.iconsSet {
		rules = cfg.iconRules
	}

	g := &Generator{
		logger:    logger,
		parser:    catalog.NewParser(parseOpts),
		templates: pipeline.Templates{Section: ts.Section, Card: ts.Card, Nav: ts.Nav},
		render: pipeline.RenderOptions{
			Icons:  pipeline.NewIconTable(rules, cfg.defaultIcon),
			Image:  cfg.image,
			Labels: cfg.labels,
		},
		fallback: cfg.defaultIcon,
		patcher:  pipeline.NewPatcher(cfg.anchors),
	}
	g.renderer, err = pipeline.NewRenderer(g.templates, g.render)
	if err != nil {
		return nil, err
	}

	logger.Debug("generator ready",
		zap.String("template_set", setName),
		zap.Bool("custom_assets", resolver.HasCustomLoader()),
		zap.Int("icon_rules", len(rules)),
	)
	return g, nil
}

// Anchors returns the patch anchors in use.
func (g *Generator) Anchors() Anchors {
	return g.patcher.Anchors()
}

// Parse builds a catalog from a source document. It never fails; rejected
// blocks and rows are counted in the stats.
func (g *Generator) Parse(text string) (*Catalog, ParseStats) {
	return g.parser.Parse(text)
}

// Render produces the navigation and content fragments for c.
func (g *Generator) Render(ctx context.Context, c *Catalog) (Fragments, error) {
	return renderWith(ctx, g.renderer, c)
}

// Patch splices the fragments into doc.
func (g *Generator) Patch(doc string, f Fragments) (string, PatchReport) {
	return g.patcher.Patch(doc, f.Navigation, f.Content)
}

func renderWith(ctx context.Context, r *pipeline.Renderer, c *Catalog) (Fragments, error) {
	nav, content, err := r.Render(ctx, c)
	if err != nil {
		return Fragments{}, err
	}
	return Fragments{Navigation: nav, Content: content}, nil
}

// Run executes the whole pipeline once: read the catalog, parse it, render
// the fragments, patch the target page and write it back atomically.
//
// Nothing is written when the catalog is empty, when no region could be
// replaced, when the patched page equals the page on disk, or in dry-run
// mode.
func (g *Generator) Run(ctx context.Context, cfg Config) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if cfg.InputPath == "" || cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: input and output paths are required", ErrInvalidConfig)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := g.logger.With(zap.String("input", cfg.InputPath), zap.String("output", cfg.OutputPath))

	source, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	cat, stats := g.parser.Parse(string(source))
	log.Debug("catalog parsed",
		zap.Int("categories", cat.Len()),
		zap.Int("tools", cat.ToolCount()),
		zap.Int("skipped_rows", stats.SkippedRows),
		zap.Int("merged_headings", stats.DuplicatesMerged),
	)
	if stats.SkippedRows > 0 {
		log.Warn("table rows skipped", zap.Int("count", stats.SkippedRows))
	}
	if cat.ToolCount() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, cfg.InputPath)
	}
	if _, ok := cat.Lookup(pipeline.AllCategoryKey); ok {
		log.Warn("category name collides with the show-all filter key",
			zap.String("category", pipeline.AllCategoryKey))
	}

	page, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadTarget, err)
	}

	renderer := g.renderer
	if cfg.CategoryIcons != nil {
		opts := g.render
		opts.Icons = pipeline.NewIconTable(cfg.CategoryIcons, g.fallback)
		if renderer, err = pipeline.NewRenderer(g.templates, opts); err != nil {
			return nil, err
		}
	}
	frags, err := renderWith(ctx, renderer, cat)
	if err != nil {
		return nil, err
	}

	patched, report := g.patcher.Patch(string(page), frags.Navigation, frags.Content)
	res := &Result{
		Catalog:   cat,
		Stats:     stats,
		Fragments: frags,
		Report:    report,
		Warnings:  report.Warnings(g.patcher.Anchors()),
		Page:      patched,
		Changed:   patched != string(page),
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	switch {
	case !report.NavReplaced && !report.ContentReplaced:
		log.Warn("no page region matched; page left untouched")
	case !res.Changed:
		log.Info("page already up to date")
	case cfg.DryRun:
		log.Info("dry run; page not written", zap.Int("bytes", len(patched)))
	default:
		if err := fileutil.WriteFileAtomic(cfg.OutputPath, []byte(patched), outputPerm); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		res.Written = true
	}

	log.Info("pipeline finished",
		zap.Int("categories", cat.Len()),
		zap.Int("tools", cat.ToolCount()),
		zap.Bool("written", res.Written),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

