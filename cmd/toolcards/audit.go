package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alnah/go-toolcards/internal/audit"
)

// runAudit lists the local images the page references, present or not.
func runAudit(_ context.Context, args []string, env *Environment) error {
	flags := &auditFlags{}
	positional, err := parseFlags(buildAuditFlagSet(flags), args)
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
	logger, err := newLogger(env, flags.common, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	page := cfg.Output.Path
	if flags.page != "" {
		page = flags.page
	}
	prefix := cfg.Audit.Prefix
	if flags.prefix != "" {
		prefix = flags.prefix
	}
	baseDir := flags.baseDir
	if baseDir == "" {
		baseDir = filepath.Dir(page)
	}

	f, err := os.Open(page) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	report, err := audit.Check(f, baseDir, audit.Options{Prefix: prefix})
	if err != nil {
		return err
	}
	logger.Debug("audit finished",
		zap.String("page", page),
		zap.Int("checked", report.Checked()),
		zap.Int("remote", report.Remote),
	)

	for _, src := range report.Missing {
		fmt.Fprintf(env.Stdout, "missing  %s\n", src)
	}
	for _, src := range report.Escaped {
		fmt.Fprintf(env.Stdout, "escaped  %s\n", src)
	}
	printf(env, flags.common.quiet, "%d images checked: %d present, %d missing\n",
		report.Checked(), len(report.Present), len(report.Missing))

	if !report.OK() {
		return fmt.Errorf("%w: %d missing, %d outside %s", ErrImagesMissing, len(report.Missing), len(report.Escaped), baseDir)
	}
	return nil
}
