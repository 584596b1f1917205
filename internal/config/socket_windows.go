//go:build windows

package config

func defaultSocketPath() string {
	return `\\.\pipe\timemark-mpv`
}
