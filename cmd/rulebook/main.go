// Package main provides the entry point for the rulebook CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "rulebook",
		Short:         "Compile tabletop rulebook documents into playbook rule sets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Log fetch and compile progress to stderr")

	rootCmd.AddCommand(
		newInitCmd(),
		newCompileCmd(),
		newPlaybooksCmd(),
		newSourcesCmd(),
		newHistoryCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
