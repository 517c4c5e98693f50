package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-toolcards/internal/config"
	"github.com/alnah/go-toolcards/internal/fileutil"
)

// defaultConfigFile is found by --config toolcards from the working directory.
const defaultConfigFile = "toolcards.yaml"

// runInit writes the default configuration so it can be edited.
func runInit(_ context.Context, args []string, env *Environment) error {
	flags := &initFlags{}
	positional, err := parseFlags(buildInitFlagSet(flags), args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes at most one path", ErrUsage)
	}

	path := defaultConfigFile
	if len(positional) == 1 {
		path = positional[0]
	}
	if fileutil.FileExists(path) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.DefaultConfig().Marshal()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Wrote %s\n", path)
	return nil
}
