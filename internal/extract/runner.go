package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"timemark/internal/logging"
)

// Fixed diagnostic artifact names inside the run directory. Each run
// overwrites all of them; concurrent extractions are not a supported
// scenario.
const (
	LastCommandFile = "lastcommand.txt"
	ScriptFile      = "extract_run.bat"
	LogFile         = "extract.log"
)

// Artifacts reports where the diagnostic files for a run live.
type Artifacts struct {
	LastCommandPath string
	// ScriptPath is the wrapper script location; empty on platforms that
	// launch the tool directly.
	ScriptPath string
	LogPath    string
}

// Runner launches built commands without blocking the caller. It never
// observes the exit status of the launched tool; the log file is the only
// trace of success or failure.
type Runner struct {
	runDir string
	logger *slog.Logger
}

// NewRunner creates a runner keeping its diagnostic artifacts under runDir.
func NewRunner(runDir string, logger *slog.Logger) *Runner {
	return &Runner{
		runDir: runDir,
		logger: logging.NewComponentLogger(logger, "runner"),
	}
}

// Run records the command, prepares the output directory, and launches the
// tool detached. The returned artifacts are valid whether or not the tool
// eventually succeeds.
func (r *Runner) Run(cmd Command) (Artifacts, error) {
	if len(cmd.Args) == 0 {
		return Artifacts{}, fmt.Errorf("empty command")
	}
	if err := os.MkdirAll(r.runDir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("ensure run directory: %w", err)
	}

	artifacts := Artifacts{
		LastCommandPath: filepath.Join(r.runDir, LastCommandFile),
		LogPath:         filepath.Join(r.runDir, LogFile),
	}

	if err := os.WriteFile(artifacts.LastCommandPath, []byte(cmd.Display+"\n"), 0o644); err != nil {
		return Artifacts{}, fmt.Errorf("write last command: %w", err)
	}

	if cmd.OutputDir != "" {
		if err := os.MkdirAll(cmd.OutputDir, 0o755); err != nil {
			return Artifacts{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	scriptPath, err := r.launch(cmd, artifacts.LogPath)
	if err != nil {
		return Artifacts{}, err
	}
	artifacts.ScriptPath = scriptPath

	r.logger.Info("extraction launched",
		logging.String("output", cmd.OutputPath),
		logging.String("log", artifacts.LogPath))
	return artifacts, nil
}
