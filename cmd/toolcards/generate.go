package main

import (
	"context"
	"fmt"
	"time"

	toolcards "github.com/alnah/go-toolcards"
	"github.com/alnah/go-toolcards/internal/config"
	"github.com/alnah/go-toolcards/internal/hints"
)

// runGenerate parses the catalog and patches the page.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags := &generateFlags{}
	positional, err := parseFlags(buildGenerateFlagSet(flags), args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(env, flags.common.config)
	if err != nil {
		return err
	}
	mergeGenerateFlags(flags, cfg)

	logger, err := newLogger(env, flags.common, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gen, err := toolcards.NewGenerator(append(generatorOptions(cfg), toolcards.WithLogger(logger))...)
	if err != nil {
		return err
	}

	start := env.Now()
	res, err := gen.Run(ctx, toolcards.Config{
		InputPath:  cfg.Input.Path,
		OutputPath: cfg.Output.Path,
		DryRun:     flags.dryRun,
	})
	if err != nil {
		return err
	}

	if !res.Report.NavReplaced && !res.Report.ContentReplaced {
		a := gen.Anchors()
		fmt.Fprintf(env.Stderr, "warning: nothing to patch in %s%s\n",
			cfg.Output.Path, hints.ForMissingAnchors(a.NavClass, a.SectionClass, a.EndTag))
		return nil
	}

	summary := fmt.Sprintf("%d categories, %d tools", res.Catalog.Len(), res.Catalog.ToolCount())
	switch {
	case res.Written:
		printf(env, flags.common.quiet, "Updated %s: %s (%v)\n", cfg.Output.Path, summary, env.Now().Sub(start).Round(time.Millisecond))
	case !res.Changed:
		printf(env, flags.common.quiet, "%s is up to date: %s\n", cfg.Output.Path, summary)
	default:
		printf(env, flags.common.quiet, "Would update %s: %s\n", cfg.Output.Path, summary)
	}
	return nil
}

// mergeGenerateFlags merges CLI flags into config. CLI values override config values.
func mergeGenerateFlags(flags *generateFlags, cfg *config.Config) {
	if flags.input != "" {
		cfg.Input.Path = flags.input
	}
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.templateSet != "" {
		cfg.Assets.TemplateSet = flags.templateSet
	}
}

// generatorOptions converts config sections into generator options.
func generatorOptions(cfg *config.Config) []toolcards.Option {
	rules := make([]toolcards.IconRule, len(cfg.Categories.Icons))
	for i, r := range cfg.Categories.Icons {
		rules[i] = toolcards.IconRule{Match: r.Match, Icon: r.Icon}
	}

	return []toolcards.Option{
		toolcards.WithAssetPath(cfg.Assets.BasePath),
		toolcards.WithTemplateSet(cfg.Assets.TemplateSet),
		toolcards.WithParseOptions(toolcards.ParseOptions{
			Sentinels:   cfg.Parser.Sentinels,
			HeaderNames: cfg.Parser.HeaderNames,
		}),
		toolcards.WithIconRules(rules, cfg.Categories.Default),
		toolcards.WithIconOptions(toolcards.IconOptions{
			Placeholder: cfg.Icons.Placeholder,
			StripPrefix: cfg.Icons.StripPrefix,
			NoStrip:     cfg.Icons.NoStrip,
		}),
		toolcards.WithLabels(toolcards.Labels{
			NavTitle: cfg.Labels.NavTitle,
			AllLabel: cfg.Labels.AllLabel,
			Button:   cfg.Labels.Button,
		}),
		toolcards.WithPatchAnchors(toolcards.Anchors{
			NavClass:     cfg.Patch.NavClass,
			SectionClass: cfg.Patch.SectionClass,
			EndTag:       cfg.Patch.EndTag,
		}),
	}
}
