package shelf_test

import (
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/shelf"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("epub"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanReturnsSortedMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zebra.epub"))
	writeFile(t, filepath.Join(dir, "alpha.epub"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	if err := os.Mkdir(filepath.Join(dir, "shelf.epub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	books, err := shelf.Scan(dir, ".epub", "_data")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].Base != "alpha" || books[1].Base != "zebra" {
		t.Fatalf("expected lexical order, got %q then %q", books[0].Base, books[1].Base)
	}
	wantMarker := filepath.Join(dir, "alpha_data")
	if books[0].MarkerPath != wantMarker {
		t.Fatalf("unexpected marker path: got %q want %q", books[0].MarkerPath, wantMarker)
	}
}

func TestScanMatchesExtensionCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Loud.EPUB"))

	books, err := shelf.Scan(dir, ".epub", "_data")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 1 || books[0].Base != "Loud" {
		t.Fatalf("expected case-insensitive match, got %v", books)
	}
}

func TestScanMissingDirectoryIsEmptyNotError(t *testing.T) {
	books, err := shelf.Scan(filepath.Join(t.TempDir(), "absent"), ".epub", "_data")
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected empty result, got %v", books)
	}
}

func TestScanEmptyDirectoryIsEmpty(t *testing.T) {
	books, err := shelf.Scan(t.TempDir(), ".epub", "_data")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected no books, got %v", books)
	}
}

func TestProcessedRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dracula.epub"))

	books, err := shelf.Scan(dir, ".epub", "_data")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	book := books[0]

	if book.Processed() {
		t.Fatal("no marker yet, should be unprocessed")
	}

	// A regular file at the marker path is not a completion marker.
	writeFile(t, book.MarkerPath)
	if book.Processed() {
		t.Fatal("regular file must not count as a marker")
	}
	if err := os.Remove(book.MarkerPath); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := os.Mkdir(book.MarkerPath, 0o755); err != nil {
		t.Fatalf("mkdir marker: %v", err)
	}
	if !book.Processed() {
		t.Fatal("empty marker directory must count as processed")
	}
}

func TestPendingFiltersMarkedBooks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.epub"))
	writeFile(t, filepath.Join(dir, "b.epub"))
	if err := os.Mkdir(filepath.Join(dir, "a_data"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	books, err := shelf.Scan(dir, ".epub", "_data")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	pending := shelf.Pending(books)
	if len(pending) != 1 || pending[0].Base != "b" {
		t.Fatalf("expected only b pending, got %v", pending)
	}
}

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"moby_dick", "Moby Dick"},
		{"war-and-peace", "War And Peace"},
		{"dracula", "Dracula"},
		{"___", "Unknown Book"},
		{"", "Unknown Book"},
	}
	for _, tc := range cases {
		book := shelf.Book{Base: tc.base}
		if got := book.DisplayTitle(); got != tc.want {
			t.Errorf("DisplayTitle(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}
