package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	toolcards "github.com/alnah/go-toolcards"
	"github.com/alnah/go-toolcards/internal/config"
	"github.com/alnah/go-toolcards/internal/fetch"
	"github.com/alnah/go-toolcards/internal/hints"
	"github.com/alnah/go-toolcards/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrConfigExists     = errors.New("config file already exists")
	ErrDownloadFailures = errors.New("some icons could not be downloaded")
	ErrImagesMissing    = errors.New("page references missing images")
)

// defaultCommand runs when the first argument is a flag or absent.
const defaultCommand = "generate"

// command is one entry of the dispatcher.
type command struct {
	name    string
	summary string
	args    string // positional arguments shown in usage
	flags   func() *flag.FlagSet
	run     func(ctx context.Context, args []string, env *Environment) error
}

// commands returns the command registry, in help order.
func commands() []command {
	return []command{
		{"generate", "Rebuild the page navigation and cards from the catalog", "",
			func() *flag.FlagSet { return buildGenerateFlagSet(&generateFlags{}) }, runGenerate},
		{"scrape", "Harvest a directory site into a catalog and download icons", "",
			func() *flag.FlagSet { return buildScrapeFlagSet(&scrapeFlags{}) }, runScrape},
		{"audit", "Report images referenced by the page that are missing on disk", "",
			func() *flag.FlagSet { return buildAuditFlagSet(&auditFlags{}) }, runAudit},
		{"doctor", "Check the browser, config and files the other commands need", "",
			func() *flag.FlagSet { return buildDoctorFlagSet(&doctorFlags{}) }, runDoctor},
		{"init", "Write the default configuration as YAML", "[path]",
			func() *flag.FlagSet { return buildInitFlagSet(&initFlags{}) }, runInit},
		{"completion", "Generate shell completion script", "<shell>", nil, runCompletion},
		{"version", "Show version information", "", nil, runVersion},
		{"help", "Show help for a command", "[command]", nil, runHelp},
	}
}

// lookupCommand returns the registry entry for name.
func lookupCommand(name string) (command, bool) {
	for _, c := range commands() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// runMain dispatches args[1:] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	name, rest := defaultCommand, args[1:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		name, rest = rest[0], rest[1:]
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	err := cmd.run(ctx, rest, env)
	if errors.Is(err, flag.ErrHelp) {
		printCommandUsage(env.Stdout, cmd)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(env.Stderr, "run 'toolcards help %s' for usage\n", cmd.name)
		}
	}
	return exitCodeFor(err)
}

// hintFor returns an actionable hint suffix for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("toolcards"))
	case errors.Is(err, toolcards.ErrReadInput):
		return hints.ForInputNotFound()
	case errors.Is(err, toolcards.ErrReadTarget):
		return hints.ForTargetNotFound()
	case errors.Is(err, toolcards.ErrEmptyCatalog):
		return hints.ForEmptyCatalog()
	case errors.Is(err, toolcards.ErrTemplateSetNotFound):
		return hints.ForTemplateSetNotFound([]string{"default"})
	case errors.Is(err, fetch.ErrBrowserConnect), errors.Is(err, fetch.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrDownloadFailures):
		return hints.ForDownloadFailures()
	}
	return ""
}

// loadConfig returns the config named by --config, then TOOLCARDS_CONFIG,
// or the defaults, with environment overrides applied and validated.
func loadConfig(env *Environment, nameOrPath string) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	vars := loadEnvConfig(env.Getenv)
	if nameOrPath == "" {
		nameOrPath = vars.ConfigPath
	}

	cfg := config.DefaultConfig()
	if nameOrPath != "" {
		var err error
		if cfg, err = config.LoadConfig(nameOrPath); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(vars, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// newLogger returns env.Logger, or a console logger on stderr whose level
// comes from the flags first, then the config.
func newLogger(env *Environment, f commonFlags, cfg *config.Config) (*zap.Logger, error) {
	if env.Logger != nil {
		return env.Logger, nil
	}
	level := cfg.Log.Level
	switch {
	case f.verbose:
		level = "debug"
	case f.quiet:
		level = "warn"
	}
	return logging.New(env.Stderr, logging.Options{Level: level, Color: isTerminal(env.Stderr)})
}

// isTerminal reports whether w is a character device.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// printf writes to stdout unless quiet is set.
func printf(env *Environment, quiet bool, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(env.Stdout, format, args...)
	}
}
