package main

import (
	"context"
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: toolcards [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-11s%s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TOOLCARDS_CONFIG, TOOLCARDS_INPUT, TOOLCARDS_OUTPUT, TOOLCARDS_LOG_LEVEL,")
	fmt.Fprintln(w, "  TOOLCARDS_SCRAPE_URL, TOOLCARDS_ICON_DIR, TOOLCARDS_TIMEOUT, TOOLCARDS_WORKERS")
	fmt.Fprintln(w, "  override the config file; flags override both.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Without a command, toolcards runs %s.\n", defaultCommand)
	fmt.Fprintln(w, "Run 'toolcards help <command>' for details on a specific command.")
}

// printCommandUsage prints usage for one command, flags taken from its FlagSet.
func printCommandUsage(w io.Writer, c command) {
	line := "Usage: toolcards " + c.name
	if c.flags != nil {
		line += " [flags]"
	}
	if c.args != "" {
		line += " " + c.args
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.summary+".")
	if c.flags != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprint(w, c.flags().FlagUsages())
	}
	if c.name == "completion" {
		fmt.Fprintln(w)
		printCompletionUsage(w)
	}
}

// runHelp prints help for a specific command.
func runHelp(_ context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}
	c, ok := lookupCommand(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	printCommandUsage(env.Stdout, c)
	return nil
}

// runVersion prints the build version.
func runVersion(_ context.Context, _ []string, env *Environment) error {
	fmt.Fprintf(env.Stdout, "toolcards %s\n", Version)
	return nil
}
