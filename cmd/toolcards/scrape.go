package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	toolcards "github.com/alnah/go-toolcards"
	"github.com/alnah/go-toolcards/internal/catalog"
	"github.com/alnah/go-toolcards/internal/config"
	"github.com/alnah/go-toolcards/internal/fetch"
	"github.com/alnah/go-toolcards/internal/fileutil"
)

// catalogPerm is the mode of a newly written catalog.
const catalogPerm = 0o644

// newPageSource returns the page source and the function releasing it.
func newPageSource(browser bool, opts fetch.ClientOptions) (fetch.PageSource, func() error) {
	if browser {
		b := fetch.NewBrowserSource(opts)
		return b, b.Close
	}
	return fetch.NewHTTPSource(opts), func() error { return nil }
}

// runScrape harvests a tool directory page into a Markdown catalog and
// downloads the icons it references.
func runScrape(ctx context.Context, args []string, env *Environment) error {
	flags := &scrapeFlags{}
	positional, err := parseFlags(buildScrapeFlagSet(flags), args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}
	if flags.workers == 0 {
		flags.workers = loadEnvConfig(env.Getenv).Workers
	}
	if flags.workers < 0 || flags.workers > fetch.MaxWorkers {
		return fmt.Errorf("%w: --workers must be between 0 and %d", ErrUsage, fetch.MaxWorkers)
	}

	cfg, err := loadConfig(env, flags.common.config)
	if err != nil {
		return err
	}
	if err := mergeScrapeFlags(flags, cfg); err != nil {
		return err
	}

	logger, err := newLogger(env, flags.common, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	base, err := url.Parse(cfg.Scrape.URL)
	if err != nil {
		return fmt.Errorf("%w: scrape url: %v", ErrUsage, err)
	}
	client := fetch.ClientOptions{
		Timeout:   cfg.TimeoutDuration(),
		UserAgent: cfg.Scrape.UserAgent,
		Logger:    logger,
	}

	source, closeSource := newPageSource(cfg.Scrape.Browser, client)
	defer func() {
		if err := closeSource(); err != nil {
			logger.Warn("closing page source", zap.Error(err))
		}
	}()

	page, err := source.Fetch(ctx, cfg.Scrape.URL)
	if err != nil {
		return err
	}
	entries, err := fetch.ParseDirectory(strings.NewReader(page), base)
	if err != nil {
		return err
	}

	items := fetch.Classify(entries, keywordRules(cfg.Scrape.Categories), cfg.Scrape.Fallback)
	cat, assets, stats := fetch.BuildCatalog(items, cfg.Scrape.IconDir)
	logger.Info("directory parsed",
		zap.Int("entries", len(entries)),
		zap.Int("classified", len(items)),
		zap.Int("without_link", stats.WithoutLink),
		zap.Int("icons", len(assets)),
	)
	if cat.ToolCount() == 0 {
		return fmt.Errorf("%w: no entry of %s matched a category", toolcards.ErrEmptyCatalog, cfg.Scrape.URL)
	}

	var buf bytes.Buffer
	if err := catalog.Write(&buf, cat, catalog.WriteOptions{Title: cfg.Scrape.Title}); err != nil {
		return fmt.Errorf("rendering catalog: %w", err)
	}
	if flags.dryRun {
		_, err := env.Stdout.Write(buf.Bytes())
		return err
	}
	if err := fileutil.WriteFileAtomic(cfg.Scrape.Output, buf.Bytes(), catalogPerm); err != nil {
		return fmt.Errorf("%w: %w", toolcards.ErrWriteOutput, err)
	}
	printf(env, flags.common.quiet, "Wrote %s: %d categories, %d tools\n", cfg.Scrape.Output, cat.Len(), cat.ToolCount())

	if flags.noDownload || len(assets) == 0 {
		return nil
	}

	start := env.Now()
	report := fetch.NewDownloader(fetch.DownloaderOptions{
		ClientOptions: client,
		Workers:       flags.workers,
	}).Download(ctx, assets)
	printf(env, flags.common.quiet, "Icons: %d downloaded, %d already present, %d failed (%v)\n",
		report.Count(fetch.Downloaded), report.Count(fetch.Skipped), report.Count(fetch.Failed),
		env.Now().Sub(start).Round(time.Millisecond))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailures, err)
	}
	return nil
}

// mergeScrapeFlags merges CLI flags into config and revalidates the
// fields flags can break.
func mergeScrapeFlags(flags *scrapeFlags, cfg *config.Config) error {
	if flags.url != "" {
		cfg.Scrape.URL = flags.url
	}
	if flags.output != "" {
		cfg.Scrape.Output = flags.output
	}
	if flags.iconDir != "" {
		cfg.Scrape.IconDir = flags.iconDir
	}
	if flags.title != "" {
		cfg.Scrape.Title = flags.title
	}
	if flags.timeout != "" {
		cfg.Scrape.Timeout = flags.timeout
	}
	if flags.browser {
		cfg.Scrape.Browser = true
	}
	return cfg.Validate()
}

func keywordRules(rules []config.KeywordRule) []fetch.KeywordRule {
	out := make([]fetch.KeywordRule, len(rules))
	for i, r := range rules {
		out[i] = fetch.KeywordRule{Category: r.Name, Keywords: r.Keywords}
	}
	return out
}
