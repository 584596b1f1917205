package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timemark/internal/player"
)

func newMarkCommand(ctx *commandContext) *cobra.Command {
	var timeFlag string

	cmd := &cobra.Command{
		Use:   "mark [remark...]",
		Short: "Mark the current playback position as a timepoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := ctx.resolveMedia()
			if err != nil {
				return err
			}

			var positionUS int64
			if strings.TrimSpace(timeFlag) != "" {
				positionUS, err = parseTimeSpec(timeFlag)
				if err != nil {
					return err
				}
			} else {
				err = ctx.withPlayer(func(host player.Host) error {
					pos, posErr := host.PositionMicros()
					if posErr != nil {
						return posErr
					}
					positionUS = pos
					return nil
				})
				if err != nil {
					return err
				}
			}

			store, eng, err := ctx.loadStore(ref)
			if err != nil {
				return err
			}

			remark := strings.TrimSpace(strings.Join(args, " "))
			point := store.Add(positionUS, remark)

			result, err := eng.Save(store, ref.Path, ref.Identifier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if remark != "" {
				fmt.Fprintf(out, "Marked %s at %s (%s)\n", point.Label, point.Formatted, remark)
			} else {
				fmt.Fprintf(out, "Marked %s at %s\n", point.Label, point.Formatted)
			}
			if result.UsedFallback {
				fmt.Fprintf(out, "Timepoints saved to fallback location %s\n", result.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeFlag, "time", "t", "", "Position to mark instead of the player's current position (seconds or [HH:]MM:SS)")
	return cmd
}
