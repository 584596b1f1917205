//go:build windows

package extract

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// launch writes the wrapper script and starts it detached. The tool is
// never invoked directly here: cmd.exe mishandles non-ASCII argument bytes,
// so the command runs inside a UTF-8 code page forced by the wrapper. The
// script is written through a UTF-8 BOM encoder so cmd.exe interprets
// embedded non-ASCII paths correctly.
func (r *Runner) launch(cmd Command, logPath string) (string, error) {
	scriptPath := filepath.Join(r.runDir, ScriptFile)
	if err := writeScript(scriptPath, batchScript(cmd.Display, logPath)); err != nil {
		return "", err
	}

	proc := exec.Command("cmd.exe", "/c", scriptPath)
	proc.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
	if err := proc.Start(); err != nil {
		return "", fmt.Errorf("launch wrapper: %w", err)
	}
	if err := proc.Process.Release(); err != nil {
		return "", fmt.Errorf("release process: %w", err)
	}
	return scriptPath, nil
}

func writeScript(path, content string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write wrapper script: %w", err)
	}
	writer := transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
	if _, err := writer.Write([]byte(content)); err != nil {
		_ = file.Close()
		return fmt.Errorf("write wrapper script: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("write wrapper script: %w", err)
	}
	return file.Close()
}
