package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timemark/internal/config"
	"timemark/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var mediaPath string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded extraction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Extraction history is disabled in the configuration")
				return nil
			}
			defer store.Close()

			var records []history.Record
			if strings.TrimSpace(mediaPath) != "" {
				expanded, pathErr := config.ExpandPath(mediaPath)
				if pathErr != nil {
					return pathErr
				}
				records, err = store.RecentForMedia(context.Background(), expanded, limit)
			} else {
				records, err = store.Recent(context.Background(), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No extraction runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for i, rec := range records {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					rec.StartedAt.Local().Format(time.DateTime),
					rec.Mode,
					rec.Label,
					rec.Formatted,
					rec.MediaPath,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Started", "Mode", "Label", "Time", "Media"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 shows everything)")
	historyCmd.Flags().StringVar(&mediaPath, "for", "", "Only show runs for this media file")

	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded extraction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Extraction history is disabled in the configuration")
				return nil
			}
			defer store.Close()

			if err := store.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Extraction history cleared")
			return nil
		},
	}
}
