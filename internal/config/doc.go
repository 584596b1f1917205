// Package config loads, normalizes, and validates timemark configuration.
//
// Configuration is TOML with a small number of sections:
//   - Paths: application data and log directories
//   - Player: mpv binary and IPC socket used as the playback host
//   - Extract: ffmpeg binary and default extraction parameters
//   - History: extraction run journal toggle
//   - Logging: log format and level
//
// Load resolves the config file (explicit path first, then
// ~/.config/timemark/config.toml), applies defaults for anything unset,
// expands and absolutizes every path field, and validates the result.
package config
