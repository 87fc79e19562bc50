package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPlaybooksCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "playbooks",
		Short: "List compiled playbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybooksList(cmd, offline)
		},
	}

	cmd.PersistentFlags().BoolVar(&offline, "offline", false, "Compile from the source cache without fetching")

	cmd.AddCommand(newPlaybooksShowCmd(&offline))

	return cmd
}

func runPlaybooksList(cmd *cobra.Command, offline bool) error {
	return withDeps(func(d *Deps) error {
		result, err := compileWorkspace(cmd, d, nil, false, offline)
		if err != nil {
			return err
		}

		playbooks := result.Rulebook.OrderedPlaybooks()
		if len(playbooks) == 0 {
			fmt.Println("No playbooks found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMECHANISMS\tFIELDS\tCHARACTER FIELDS\tCHOICES")
		for _, pb := range playbooks {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
				pb.Name,
				strings.Join(pb.MechanismNames(), ", "),
				len(pb.Fields),
				len(pb.CharacterFields),
				len(pb.Choices),
			)
		}
		w.Flush()

		return nil
	})
}

func newPlaybooksShowCmd(offline *bool) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show one compiled playbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlaybooksShow(cmd, args[0], format, *offline)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (json, yaml)")

	return cmd
}

func runPlaybooksShow(cmd *cobra.Command, name, format string, offline bool) error {
	if !contains(validFormats, format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
	}

	return withDeps(func(d *Deps) error {
		result, err := compileWorkspace(cmd, d, nil, false, offline)
		if err != nil {
			return err
		}

		pb, ok := result.Rulebook.Playbook(name)
		if !ok {
			return fmt.Errorf("playbook %q not found (available: %s)", name, strings.Join(result.Rulebook.PlaybookNames, ", "))
		}

		return writeOutput("", format, pb)
	})
}
