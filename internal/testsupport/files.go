package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/config"
)

// WriteBook drops an artifact file into the configured library directory and
// returns its path.
func WriteBook(t testing.TB, cfg *config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.LibraryDir, name)
	if err := os.WriteFile(path, []byte("epub-bytes"), 0o644); err != nil {
		t.Fatalf("write book %s: %v", name, err)
	}
	return path
}

// WriteMarker creates a completion marker directory for the given base name.
func WriteMarker(t testing.TB, cfg *config.Config, base string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.LibraryDir, base+cfg.Scan.MarkerSuffix)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("write marker %s: %v", path, err)
	}
	return path
}
