package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent compile runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of runs to display")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		runs, err := d.HistoryHandler.Handle(ctx, limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No compile runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSOURCES\tMECHANISMS\tPLAYBOOKS\tWARNINGS\tRESULT")
		for _, run := range runs {
			status := "ok"
			if !run.Succeeded() {
				status = truncate(run.Error, 60)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
				run.CreatedAt.Local().Format(time.DateTime),
				len(run.Sources),
				run.Mechanisms,
				run.Playbooks,
				run.Warnings,
				status,
			)
		}
		w.Flush()

		return nil
	})
}
