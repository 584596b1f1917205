package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"timemark/internal/deps"
	"timemark/internal/player"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability, player connection, and storage paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, heading(out, "External tools"))
			statuses := deps.CheckBinaries(deps.Requirements(cfg.Extract.FFmpegBinary, cfg.Player.Binary))
			rows := make([][]string, 0, len(statuses))
			for _, st := range statuses {
				rows = append(rows, []string{st.Name, st.Command, availability(st)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			fmt.Fprintln(out, heading(out, "Player"))
			fmt.Fprintf(out, "Socket: %s\n", ctx.socketPath())
			if client, dialErr := ctx.dialPlayer(); dialErr != nil {
				fmt.Fprintln(out, "Connection: not reachable")
			} else {
				fmt.Fprintln(out, "Connection: ok")
				reportLoadedMedia(out, client)
				_ = client.Close()
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, heading(out, "Storage"))
			fmt.Fprintf(out, "Data directory: %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "Fallback metadata: %s\n", cfg.MetaDir())
			fmt.Fprintf(out, "Run artifacts: %s\n", cfg.RunDir())
			if cfg.History.Enabled {
				fmt.Fprintf(out, "Extraction history: %s\n", cfg.HistoryPath())
			} else {
				fmt.Fprintln(out, "Extraction history: disabled")
			}
			return nil
		},
	}
}

func reportLoadedMedia(out io.Writer, host player.Host) {
	location, err := host.MediaLocation()
	if err != nil || location == "" {
		fmt.Fprintln(out, "Loaded media: none")
		return
	}
	fmt.Fprintf(out, "Loaded media: %s\n", location)
}

func availability(st deps.Status) string {
	if st.Available {
		return "available"
	}
	if st.Optional {
		return "missing (optional): " + st.Detail
	}
	return "missing: " + st.Detail
}
