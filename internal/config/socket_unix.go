//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

func defaultSocketPath() string {
	return filepath.Join(os.TempDir(), "timemark-mpv.sock")
}
