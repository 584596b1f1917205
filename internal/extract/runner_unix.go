//go:build !windows

package extract

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// launch starts the tool directly with combined output redirected to the
// log file, detached in its own session so it outlives the caller. No
// wrapper script is needed off Windows.
func (r *Runner) launch(cmd Command, logPath string) (string, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	proc := exec.Command(cmd.Args[0], cmd.Args[1:]...)
	proc.Stdout = logFile
	proc.Stderr = logFile
	proc.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := proc.Start(); err != nil {
		return "", fmt.Errorf("launch %s: %w", cmd.Args[0], err)
	}
	// Fire and forget: drop the handle so the child is never waited on.
	if err := proc.Process.Release(); err != nil {
		return "", fmt.Errorf("release process: %w", err)
	}
	return "", nil
}
