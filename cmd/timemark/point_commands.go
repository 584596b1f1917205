package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timemark/internal/player"
	"timemark/internal/timepoint"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove INDEX",
		Short: "Remove a timepoint by its list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := timepoint.ParseIndex(args[0])
			if err != nil {
				return err
			}

			ref, err := ctx.resolveMedia()
			if err != nil {
				return err
			}
			store, eng, err := ctx.loadStore(ref)
			if err != nil {
				return err
			}

			removed, err := store.Remove(index)
			if err != nil {
				return friendlyError(err)
			}
			if _, err := eng.Save(store, ref.Path, ref.Identifier); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed timepoint at %s\n", removed.Formatted)
			return nil
		},
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit INDEX [remark...]",
		Short: "Replace the remark on a timepoint (no remark clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := timepoint.ParseIndex(args[0])
			if err != nil {
				return err
			}

			ref, err := ctx.resolveMedia()
			if err != nil {
				return err
			}
			store, eng, err := ctx.loadStore(ref)
			if err != nil {
				return err
			}

			remark := strings.TrimSpace(strings.Join(args[1:], " "))
			if err := store.UpdateRemark(index, remark); err != nil {
				return friendlyError(err)
			}
			if _, err := eng.Save(store, ref.Path, ref.Identifier); err != nil {
				return err
			}

			point, err := store.At(index)
			if err != nil {
				return friendlyError(err)
			}
			if remark == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared remark on %s\n", point.Label)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", point.Label, remark)
			}
			return nil
		},
	}
}

func newJumpCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "jump INDEX",
		Short: "Seek the player to a timepoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := timepoint.ParseIndex(args[0])
			if err != nil {
				return err
			}

			ref, err := ctx.resolveMedia()
			if err != nil {
				return err
			}
			store, _, err := ctx.loadStore(ref)
			if err != nil {
				return err
			}

			point, err := store.At(index)
			if err != nil {
				return friendlyError(err)
			}

			err = ctx.withPlayer(func(host player.Host) error {
				return host.SetPositionMicros(point.Time)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Jumped to %s (%s)\n", point.Label, point.Formatted)
			return nil
		},
	}
}
