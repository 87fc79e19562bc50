package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/infrastructure/config"
)

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage rulebook sources",
		RunE:  runSourcesList,
	}

	cmd.AddCommand(
		newSourcesListCmd(),
		newSourcesAddCmd(),
		newSourcesRemoveCmd(),
	)

	return cmd
}

func newSourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured and cached sources",
		RunE:  runSourcesList,
	}
}

// sourceRow is one line of the sources table.
type sourceRow struct {
	Address    string
	Configured bool
	Cached     *entities.Source
}

// sourceRows lists configured sources in order, then cached-only sources.
func sourceRows(configured []string, cached []entities.Source) []sourceRow {
	byAddress := make(map[string]*entities.Source, len(cached))
	for i := range cached {
		byAddress[cached[i].Address] = &cached[i]
	}

	rows := make([]sourceRow, 0, len(configured)+len(cached))
	seen := make(map[string]bool, len(configured))
	for _, address := range configured {
		seen[address] = true
		rows = append(rows, sourceRow{Address: address, Configured: true, Cached: byAddress[address]})
	}
	for i := range cached {
		if !seen[cached[i].Address] {
			rows = append(rows, sourceRow{Address: cached[i].Address, Cached: &cached[i]})
		}
	}
	return rows
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		cached, err := d.SourcesHandler.List(ctx)
		if err != nil {
			return err
		}

		rows := sourceRows(d.Config.Sources, cached)
		if len(rows) == 0 {
			fmt.Println("No sources configured.")
			fmt.Println("Use 'rulebook sources add ADDRESS' to add one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ADDRESS\tCONFIGURED\tFORMAT\tCHECKSUM\tFETCHED")
		for _, row := range rows {
			configured := ""
			if row.Configured {
				configured = "yes"
			}
			format, checksum, fetched := "-", "-", "never"
			if row.Cached != nil {
				format = row.Cached.Format
				checksum = truncate(row.Cached.Checksum, ChecksumDisplayLen)
				fetched = row.Cached.FetchedAt.Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Address, configured, format, checksum, fetched)
		}
		w.Flush()

		return nil
	})
}

func newSourcesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add ADDRESS...",
		Short: "Add default sources",
		Long:  "Appends file paths or http(s) URLs to the sources compiled by default.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			if err := addSources(cwd, args); err != nil {
				return err
			}
			for _, address := range args {
				fmt.Printf("Added source %s\n", address)
			}
			return nil
		},
	}
}

// addSources appends addresses to the workspace config.
func addSources(basePath string, addresses []string) error {
	cfg, err := config.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for _, address := range addresses {
		if err := cfg.AddSource(address); err != nil {
			return err
		}
	}
	if err := config.Write(basePath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func newSourcesRemoveCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "remove ADDRESS",
		Short: "Remove a default source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesRemove(cmd, args[0], purge)
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Also delete the cached copy")

	return cmd
}

func runSourcesRemove(cmd *cobra.Command, address string, purge bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if err := removeSource(cwd, address); err != nil {
		return err
	}
	fmt.Printf("Removed source %s\n", address)

	if !purge {
		return nil
	}

	return withDeps(func(d *Deps) error {
		if err := d.SourcesHandler.Remove(cmd.Context(), address); err != nil {
			return err
		}
		fmt.Printf("Deleted cached copy of %s\n", address)
		return nil
	})
}

// removeSource drops address from the workspace config.
func removeSource(basePath, address string) error {
	cfg, err := config.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.RemoveSource(address); err != nil {
		return err
	}
	if err := config.Write(basePath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
