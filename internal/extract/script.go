package extract

import "strings"

// batchScript renders the Windows wrapper for a command. The wrapper forces
// the UTF-8 code page before running anything, because the embedded command
// may carry non-ASCII paths, and redirects combined output to the log file.
// Percent signs are doubled: cmd.exe would otherwise substitute them as
// positional arguments and corrupt numbered-output patterns like %06d.jpg.
func batchScript(display, logPath string) string {
	var b strings.Builder
	b.WriteString("@echo off\r\n")
	b.WriteString("chcp 65001 >nul\r\n")
	b.WriteString(escapePercent(display))
	b.WriteString(" > \"")
	b.WriteString(escapePercent(logPath))
	b.WriteString("\" 2>&1\r\n")
	return b.String()
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
