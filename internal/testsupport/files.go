package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMedia drops a placeholder media file at path and returns it.
func WriteMedia(t testing.TB, path string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
