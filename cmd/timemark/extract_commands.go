package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"timemark/internal/deps"
	"timemark/internal/extract"
	"timemark/internal/history"
	"timemark/internal/status"
	"timemark/internal/timepoint"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract frames or clips around a timepoint with ffmpeg",
	}

	extractCmd.AddCommand(newExtractModeCommand(ctx, "frames", extract.ModeFrames,
		"Extract a JPEG frame sequence around a timepoint"))
	extractCmd.AddCommand(newExtractModeCommand(ctx, "clip", extract.ModeLosslessClip,
		"Cut a stream-copy clip around a timepoint"))
	extractCmd.AddCommand(newExtractModeCommand(ctx, "encode", extract.ModeEncodedClip,
		"Re-encode a clip around a timepoint"))

	return extractCmd
}

func newExtractModeCommand(ctx *commandContext, name string, mode extract.Mode, short string) *cobra.Command {
	var (
		before float64
		after  float64
		fps    int
		width  int
		height int
		crf    int
		preset string
	)

	cmd := &cobra.Command{
		Use:   name + " INDEX",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := timepoint.ParseIndex(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			ffmpeg := deps.FFmpegAvailable(cfg.Extract.FFmpegBinary)
			if !ffmpeg.Available {
				return status.Wrap(status.ErrToolMissing, "cli", "extract", ffmpeg.Detail, nil)
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

			params := extract.Params{
				BeforeSeconds: cfg.Extract.BeforeSeconds,
				AfterSeconds:  cfg.Extract.AfterSeconds,
				FPS:           cfg.Extract.FPS,
				Width:         cfg.Extract.Width,
				Height:        cfg.Extract.Height,
				CRF:           cfg.Extract.CRF,
				Preset:        cfg.Extract.Preset,
			}
			flags := cmd.Flags()
			if flags.Changed("before") {
				params.BeforeSeconds = before
			}
			if flags.Changed("after") {
				params.AfterSeconds = after
			}
			if flags.Changed("fps") {
				params.FPS = fps
			}
			if flags.Changed("width") {
				params.Width = width
			}
			if flags.Changed("height") {
				params.Height = height
			}
			if flags.Changed("crf") {
				params.CRF = crf
			}
			if flags.Changed("preset") {
				params.Preset = preset
			}

			builder := extract.NewBuilder(cfg.Extract.FFmpegBinary)
			command, err := builder.Build(point, ref.Path, params, mode)
			if err != nil {
				return err
			}

			runner, err := ctx.runner()
			if err != nil {
				return err
			}
			artifacts, err := runner.Run(command)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Launched ffmpeg (%s) for %s at %s\n", mode, point.Label, point.Formatted)
			fmt.Fprintf(out, "Output: %s\n", command.OutputPath)
			fmt.Fprintf(out, "Log: %s\n", artifacts.LogPath)

			if err := journalRun(ctx, ref, point, mode, command, artifacts); err != nil {
				// The extraction is already running; a journal failure is
				// worth a warning but not a failed command.
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not record run in history: %v\n", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&before, "before", 0, "Seconds before the timepoint to include (0 with --after 0 extracts a single frame)")
	flags.Float64Var(&after, "after", 0, "Seconds after the timepoint to include")
	if mode == extract.ModeFrames || mode == extract.ModeEncodedClip {
		flags.IntVar(&fps, "fps", 0, "Frames per second to sample")
		flags.IntVar(&width, "width", 0, "Frame width in pixels")
		flags.IntVar(&height, "height", 0, "Frame height in pixels")
	}
	if mode == extract.ModeEncodedClip {
		flags.IntVar(&crf, "crf", 0, "x264 constant rate factor")
		flags.StringVar(&preset, "preset", "", "x264 encoder preset")
	}
	return cmd
}

func journalRun(ctx *commandContext, ref media, point timepoint.Timepoint, mode extract.Mode, command extract.Command, artifacts extract.Artifacts) error {
	store, err := ctx.openHistory()
	if err != nil || store == nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(context.Background(), history.Record{
		MediaPath:  ref.Path,
		Identifier: ref.Identifier,
		Label:      point.Label,
		TimeMicros: point.Time,
		Formatted:  point.Formatted,
		Mode:       string(mode),
		Command:    command.Display,
		OutputPath: command.OutputPath,
		LogPath:    artifacts.LogPath,
	})
	return err
}
