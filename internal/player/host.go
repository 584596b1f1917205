// Package player provides the playback-host collaborator interface and its
// mpv implementation.
//
// timemark does not play media itself; it asks a running player for the
// active media location and playback position, and can seek it. The only
// implementation talks to mpv over its JSON IPC socket
// (mpv --input-ipc-server=<path>).
package player

import (
	"net/url"
	"strings"
)

// Host reports and controls the playback position of the active media.
type Host interface {
	// MediaLocation returns the URI of the currently loaded media, or an
	// empty string when nothing is loaded.
	MediaLocation() (string, error)
	// PositionMicros returns the current playback position in integer
	// microseconds from media start.
	PositionMicros() (int64, error)
	// SetPositionMicros seeks to the given offset.
	SetPositionMicros(int64) error
}

// LocalPath maps a media URI to a local filesystem path. Plain paths pass
// through unchanged; file:// URIs are unescaped; anything else (network
// streams and the like) has no local path.
func LocalPath(uri string) (string, bool) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return "", false
	}
	if !strings.Contains(trimmed, "://") {
		return trimmed, true
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme != "file" {
		return "", false
	}
	path := parsed.Path
	// file:///C:/videos → C:/videos
	if len(path) >= 3 && path[0] == '/' && isDriveLetter(path[1]) && path[2] == ':' {
		path = path[1:]
	}
	if path == "" {
		return "", false
	}
	return path, true
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
