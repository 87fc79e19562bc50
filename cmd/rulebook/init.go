package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/rulebook-core/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [SOURCE...]",
		Short: "Initialize a new rulebook workspace",
		Long: `Creates a .rulebook directory with default configuration and an empty
source cache. Any SOURCE arguments (file paths or http(s) URLs, core rulebook
first) become the default documents for 'rulebook compile'.`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	handler := handlers.NewInitHandler(openStore(cwd))
	result, err := handler.Handle(cmd.Context(), cwd, args)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	for _, source := range result.Sources {
		fmt.Printf("  source: %s\n", source)
	}
	fmt.Println("Rulebook workspace initialized successfully!")

	return nil
}
