package extract

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"timemark/internal/textutil"
	"timemark/internal/timepoint"
)

// Mode selects the extraction shape.
type Mode string

const (
	ModeFrames       Mode = "frames"
	ModeLosslessClip Mode = "lossless"
	ModeEncodedClip  Mode = "encoded"
)

// Params are the extraction parameters. A negative window value or a
// non-positive numeric parameter falls back to the repository default, each
// independently; a zero window is meaningful and selects single-frame
// extraction.
type Params struct {
	BeforeSeconds float64
	AfterSeconds  float64
	FPS           int
	Width         int
	Height        int
	CRF           int
	Preset        string
}

const (
	defaultBeforeSeconds = 2
	defaultAfterSeconds  = 3
	defaultFPS           = 5
	defaultWidth         = 320
	defaultHeight        = 240
	defaultCRF           = 23
	defaultPreset        = "veryfast"
)

func (p Params) withDefaults() Params {
	if p.BeforeSeconds < 0 {
		p.BeforeSeconds = defaultBeforeSeconds
	}
	if p.AfterSeconds < 0 {
		p.AfterSeconds = defaultAfterSeconds
	}
	if p.FPS <= 0 {
		p.FPS = defaultFPS
	}
	if p.Width <= 0 {
		p.Width = defaultWidth
	}
	if p.Height <= 0 {
		p.Height = defaultHeight
	}
	if p.CRF <= 0 {
		p.CRF = defaultCRF
	}
	if strings.TrimSpace(p.Preset) == "" {
		p.Preset = defaultPreset
	}
	return p
}

// Command is a fully built external-tool invocation.
type Command struct {
	// Args is the flat argument vector, binary first, suitable for
	// exec.Command(Args[0], Args[1:]...).
	Args []string
	// Display is the equivalent single string used for logging and the
	// last-command diagnostic file.
	Display string
	// OutputDir is the directory the invocation writes into; it must exist
	// before launch.
	OutputDir string
	// OutputPath is the file or pattern the invocation produces.
	OutputPath string
}

// Builder synthesizes ffmpeg invocations.
type Builder struct {
	ffmpegBinary string
}

// NewBuilder creates a builder invoking the given ffmpeg binary.
func NewBuilder(ffmpegBinary string) *Builder {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Builder{ffmpegBinary: ffmpegBinary}
}

// Build produces the invocation for one timepoint against a local media
// path. The extraction window is [max(0, time-before), +before+after).
func (b *Builder) Build(tp timepoint.Timepoint, mediaPath string, params Params, mode Mode) (Command, error) {
	params = params.withDefaults()

	startSec := float64(tp.Time)/1e6 - params.BeforeSeconds
	if startSec < 0 {
		startSec = 0
	}
	durationSec := params.BeforeSeconds + params.AfterSeconds
	start := formatSeconds(startSec)
	duration := formatSeconds(durationSec)

	mediaDir := filepath.Dir(mediaPath)
	ext := filepath.Ext(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), ext)

	var cmd Command
	switch mode {
	case ModeFrames:
		outDir := filepath.Join(mediaDir, base+"_extracted_frames", sanitizeOrDefault(tp.Label))
		if durationSec > 0 {
			cmd = Command{
				OutputDir:  outDir,
				OutputPath: filepath.Join(outDir, "%06d.jpg"),
				Args: []string{
					b.ffmpegBinary,
					"-ss", start,
					"-i", mediaPath,
					"-t", duration,
					"-vf", fmt.Sprintf("fps=%d,scale=%d:%d", params.FPS, params.Width, params.Height),
					"-qscale:v", "2",
					"-f", "image2",
					filepath.Join(outDir, "%06d.jpg"),
				},
			}
		} else {
			// Zero window: seek and take exactly one frame.
			out := filepath.Join(outDir, "000001.jpg")
			cmd = Command{
				OutputDir:  outDir,
				OutputPath: out,
				Args: []string{
					b.ffmpegBinary,
					"-ss", start,
					"-i", mediaPath,
					"-frames:v", "1",
					"-vf", fmt.Sprintf("scale=%d:%d", params.Width, params.Height),
					"-qscale:v", "2",
					out,
				},
			}
		}
	case ModeLosslessClip:
		outDir := filepath.Join(mediaDir, base+"_extracted_movies")
		out := filepath.Join(outDir, clipFileName(tp, "", ext))
		cmd = Command{
			OutputDir:  outDir,
			OutputPath: out,
			Args: []string{
				b.ffmpegBinary,
				"-ss", start,
				"-i", mediaPath,
				"-t", duration,
				"-c", "copy",
				out,
			},
		}
	case ModeEncodedClip:
		outDir := filepath.Join(mediaDir, base+"_extracted_movies")
		out := filepath.Join(outDir, clipFileName(tp, "_encoded", ext))
		cmd = Command{
			OutputDir:  outDir,
			OutputPath: out,
			Args: []string{
				b.ffmpegBinary,
				"-ss", start,
				"-i", mediaPath,
				"-t", duration,
				"-vf", fmt.Sprintf("fps=%d,scale=%d:%d", params.FPS, params.Width, params.Height),
				"-c:v", "libx264",
				"-preset", params.Preset,
				"-crf", strconv.Itoa(params.CRF),
				"-c:a", "aac",
				out,
			},
		}
	default:
		return Command{}, fmt.Errorf("unknown extraction mode %q", mode)
	}

	cmd.Display = DisplayString(cmd.Args)
	return cmd, nil
}

// clipFileName builds {label}[_{sanitizedRemark}]{suffix}{ext}. An empty or
// all-unsafe remark contributes neither separator nor suffix.
func clipFileName(tp timepoint.Timepoint, suffix, ext string) string {
	name := sanitizeOrDefault(tp.Label)
	if remark := textutil.SanitizeComponent(tp.Remark); remark != "" {
		name += "_" + remark
	}
	return name + suffix + ext
}

func sanitizeOrDefault(label string) string {
	if s := textutil.SanitizeComponent(label); s != "" {
		return s
	}
	return "Point0000"
}

// DisplayString renders an argument vector as one loggable command line.
// Arguments containing spaces or quotes are double-quoted.
func DisplayString(args []string) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"") {
			parts = append(parts, strconv.Quote(arg))
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}

// formatSeconds renders seconds with millisecond precision, matching the
// -ss/-t rendering the tool expects.
func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
