package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the timepoints marked for the active media",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := ctx.resolveMedia()
			if err != nil {
				return err
			}

			store, _, err := ctx.loadStore(ref)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading(out, fmt.Sprintf("Timepoints for %s", ref.Path)))
			if store.Len() == 0 {
				fmt.Fprintln(out, "No timepoints marked")
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"#", "Label", "Time", "Remark"},
				pointRows(store.Points()),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
