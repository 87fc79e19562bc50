package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/rulebook-core/internal/application/handlers"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
)

type compileFlags struct {
	strict  bool
	offline bool
	format  string
	output  string
}

func newCompileCmd() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "compile [ADDRESS...]",
		Short: "Compile rulebook documents",
		Long: `Fetches, validates and compiles rulebook documents into mechanisms and
playbooks. Addresses default to the configured sources; the core rulebook
must be among them. Warnings are printed to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Reject unknown mechanism categories")
	cmd.Flags().BoolVar(&flags.offline, "offline", false, "Compile from the source cache without fetching")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string, flags compileFlags) error {
	if !contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	return withDeps(func(d *Deps) error {
		result, err := compileWorkspace(cmd, d, args, flags.strict, flags.offline)
		if err != nil {
			return err
		}

		if err := writeOutput(flags.output, flags.format, result.Rulebook); err != nil {
			return err
		}

		if flags.output != "" {
			fmt.Printf("Compiled %d mechanisms and %d playbooks to %s\n",
				result.Compilation.Mechanisms, result.Compilation.Playbooks, flags.output)
		}
		return nil
	})
}

// compileWorkspace runs one locked compile and prints its warnings.
func compileWorkspace(cmd *cobra.Command, d *Deps, addresses []string, strict, offline bool) (*handlers.CompileResult, error) {
	if len(addresses) == 0 {
		addresses = d.Config.Sources
	}

	lock, err := acquireWorkspaceLock(cmd.Context(), d.BasePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	result, err := d.CompileHandler.Handle(cmd.Context(), handlers.CompileRequest{
		Addresses: addresses,
		Strict:    strict || d.Config.Compiler.Strict,
		Cached:    offline,
	})
	if err != nil {
		return nil, err
	}

	printWarnings(result.Rulebook)
	return result, nil
}

func printWarnings(rb *entities.Rulebook) {
	for _, w := range rb.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
