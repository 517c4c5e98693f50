package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common      commonFlags
	input       string
	output      string
	assetPath   string
	templateSet string
	dryRun      bool
}

// scrapeFlags holds all flags for the scrape command.
type scrapeFlags struct {
	common     commonFlags
	url        string
	output     string
	iconDir    string
	title      string
	timeout    string
	workers    int
	browser    bool
	noDownload bool
	dryRun     bool
}

// auditFlags holds all flags for the audit command.
type auditFlags struct {
	common  commonFlags
	page    string
	baseDir string
	prefix  string
}

// initFlags holds all flags for the init command.
type initFlags struct {
	force bool
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

func buildGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := newFlagSet("generate")
	fs.StringVarP(&f.input, "input", "i", "", "Markdown catalog")
	fs.StringVarP(&f.output, "output", "o", "", "HTML page patched in place")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template directory")
	fs.StringVar(&f.templateSet, "template-set", "", "template set name")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "render and patch without writing")
	addCommonFlags(fs, &f.common)
	return fs
}

func buildScrapeFlagSet(f *scrapeFlags) *flag.FlagSet {
	fs := newFlagSet("scrape")
	fs.StringVarP(&f.url, "url", "u", "", "directory page to harvest")
	fs.StringVarP(&f.output, "output", "o", "", "Markdown catalog to write")
	fs.StringVar(&f.iconDir, "icon-dir", "", "directory icons are saved to")
	fs.StringVar(&f.title, "title", "", "title line of the written catalog")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-request timeout (e.g. 10s, 1m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel downloads (0 = auto)")
	fs.BoolVar(&f.browser, "browser", false, "render the page in headless Chrome")
	fs.BoolVar(&f.noDownload, "no-download", false, "write the catalog, skip icon downloads")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the catalog, write nothing")
	addCommonFlags(fs, &f.common)
	return fs
}

func buildAuditFlagSet(f *auditFlags) *flag.FlagSet {
	fs := newFlagSet("audit")
	fs.StringVarP(&f.page, "page", "p", "", "HTML page to check (default: output.path)")
	fs.StringVar(&f.baseDir, "base-dir", "", "directory image paths are relative to (default: page directory)")
	fs.StringVar(&f.prefix, "prefix", "", "only check sources under this prefix")
	addCommonFlags(fs, &f.common)
	return fs
}

func buildInitFlagSet(f *initFlags) *flag.FlagSet {
	fs := newFlagSet("init")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	return fs
}

func buildDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := newFlagSet("doctor")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseFlags runs fs over args and returns the positional arguments.
// flag.ErrHelp is returned unchanged; other parse errors wrap ErrUsage.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}
