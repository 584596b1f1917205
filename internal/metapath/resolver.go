// Package metapath derives the on-disk locations for timepoint metadata.
//
// Every media file has a preferred metadata path right next to it (extension
// swapped for .tp) and a fallback path inside the application data
// directory. The fallback exists for two situations: the media's directory
// is not writable, or the preferred path cannot be trusted at all. On
// Windows the command layer mishandles non-ASCII byte sequences in paths, so
// any preferred path containing one is skipped outright instead of patched
// around.
package metapath

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"timemark/internal/textutil"
)

// MetaExt is the metadata file extension.
const MetaExt = ".tp"

// maxFallbackName caps the sanitized identifier portion of a fallback file
// name. Longer identifiers are truncated and suffixed with a hash of the
// original identifier so distinct media that share a 120-character prefix
// still get distinct fallback files.
const maxFallbackName = 120

// Resolver derives metadata paths for media locations.
type Resolver struct {
	metaDir string
}

// NewResolver creates a resolver rooting fallback files at metaDir.
func NewResolver(metaDir string) *Resolver {
	return &Resolver{metaDir: metaDir}
}

// Resolve returns the preferred and fallback metadata paths for a media
// file. mediaPath is the local filesystem path; identifier is the media's
// full location identifier (typically its URI) and keys the fallback name.
// An empty identifier falls back to mediaPath.
func (r *Resolver) Resolve(mediaPath, identifier string) (preferred, fallback string) {
	if strings.TrimSpace(identifier) == "" {
		identifier = mediaPath
	}
	return preferredPath(mediaPath), r.fallbackPath(identifier)
}

// preferredPath swaps the media extension for MetaExt, or appends MetaExt
// when the path has no extension.
func preferredPath(mediaPath string) string {
	ext := filepath.Ext(mediaPath)
	if ext == "" {
		return mediaPath + MetaExt
	}
	return mediaPath[:len(mediaPath)-len(ext)] + MetaExt
}

func (r *Resolver) fallbackPath(identifier string) string {
	name := textutil.SanitizeIdentifier(identifier)
	runes := []rune(name)
	if len(runes) > maxFallbackName {
		name = fmt.Sprintf("%s_%08x", string(runes[:maxFallbackName]), Hash32(identifier))
	}
	if name == "" {
		name = fmt.Sprintf("%08x", Hash32(identifier))
	}
	return filepath.Join(r.metaDir, name+MetaExt)
}

// ForceFallback reports whether the preferred path must be bypassed
// entirely. True only on Windows when the path contains any byte outside
// the ASCII range; writing or executing through such paths there is
// unreliable, so the fallback sidesteps the problem.
func ForceFallback(preferred string) bool {
	return forceFallbackOn(runtime.GOOS, preferred)
}

func forceFallbackOn(goos, preferred string) bool {
	if goos != "windows" {
		return false
	}
	for i := 0; i < len(preferred); i++ {
		if preferred[i] >= 0x80 {
			return true
		}
	}
	return false
}

// Hash32 is the 32-bit rolling hash used to disambiguate truncated fallback
// names: h = h*33 + byte, modulo 2^32, over the raw bytes of the original
// identifier.
func Hash32(value string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(value); i++ {
		h = h*33 + uint32(value[i])
	}
	return h
}
