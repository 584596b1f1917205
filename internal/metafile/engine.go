// Package metafile persists the timepoint store with preferred/fallback
// path semantics.
//
// Saves try the metadata path next to the media first and fall back to the
// application data directory when that write fails or when the preferred
// path is unusable outright (see metapath.ForceFallback). Loads mirror the
// same order and treat a missing or malformed file as a normal empty store;
// first run and corrupt metadata are indistinguishable on purpose.
package metafile

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"timemark/internal/logging"
	"timemark/internal/metapath"
	"timemark/internal/status"
	"timemark/internal/timepoint"
)

// Engine serializes and deserializes timepoint stores.
type Engine struct {
	resolver *metapath.Resolver
	metaDir  string
	logger   *slog.Logger
}

// NewEngine creates an engine writing fallback files under metaDir.
func NewEngine(metaDir string, logger *slog.Logger) *Engine {
	return &Engine{
		resolver: metapath.NewResolver(metaDir),
		metaDir:  metaDir,
		logger:   logging.NewComponentLogger(logger, "metafile"),
	}
}

// SaveResult reports where a save landed.
type SaveResult struct {
	Path         string
	UsedFallback bool
}

// Save rewrites the metadata file for the given media. The preferred path is
// attempted first unless it must be bypassed; any write failure falls back
// to the application data directory. Only failure of both paths is an error.
func (e *Engine) Save(store *timepoint.Store, mediaPath, identifier string) (SaveResult, error) {
	preferred, fallback := e.resolver.Resolve(mediaPath, identifier)
	data := Encode(store.Points())

	unlock, err := e.lock()
	if err == nil {
		defer unlock()
	}

	if metapath.ForceFallback(preferred) {
		e.logger.Debug("preferred path bypassed", logging.String("preferred", preferred))
		if err := writeFile(fallback, data); err != nil {
			return SaveResult{}, status.Wrap(status.ErrStorage, "metafile", "save", "fallback path failed", err)
		}
		return SaveResult{Path: fallback, UsedFallback: true}, nil
	}

	if err := writeFile(preferred, data); err == nil {
		return SaveResult{Path: preferred}, nil
	} else {
		e.logger.Debug("preferred path not writable", logging.String("preferred", preferred), logging.Error(err))
	}

	if err := writeFile(fallback, data); err != nil {
		return SaveResult{}, status.Wrap(status.ErrStorage, "metafile", "save", "both paths failed", err)
	}
	return SaveResult{Path: fallback, UsedFallback: true}, nil
}

// Load reads the timepoint store for the given media. A missing, unreadable,
// or malformed file at both paths yields an empty store and never an error.
// The path that supplied the data is returned, empty when nothing loaded.
func (e *Engine) Load(mediaPath, identifier string) (*timepoint.Store, string) {
	preferred, fallback := e.resolver.Resolve(mediaPath, identifier)

	candidates := []string{preferred, fallback}
	if metapath.ForceFallback(preferred) {
		candidates = []string{fallback}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				e.logger.Debug("metadata unreadable", logging.String("path", path), logging.Error(err))
			}
			continue
		}
		records, err := Parse(data)
		if err != nil {
			e.logger.Warn("metadata malformed, treating as empty",
				logging.String("path", path), logging.Error(err))
			continue
		}
		return timepoint.FromRecords(records), path
	}
	return timepoint.NewStore(), ""
}

// lock serializes metadata rewrites across timemark processes. In-process
// flow stays single-threaded and lock-free.
func (e *Engine) lock() (func(), error) {
	if e.metaDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(e.metaDir, 0o755); err != nil {
		return func() {}, err
	}
	fl := flock.New(filepath.Join(e.metaDir, ".timemark.lock"))
	if err := fl.Lock(); err != nil {
		return func() {}, err
	}
	return func() { _ = fl.Unlock() }, nil
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
