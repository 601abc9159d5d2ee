package shelf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan enumerates artifacts with the given extension directly inside dir and
// returns them in lexical order for deterministic processing. A missing
// directory or zero matches yields an empty slice, not an error.
func Scan(dir, extension, markerSuffix string) ([]Book, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library dir %q: %w", dir, err)
	}

	ext := strings.ToLower(extension)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ext {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	books := make([]Book, 0, len(names))
	for _, name := range names {
		books = append(books, NewBook(filepath.Join(dir, name), markerSuffix))
	}
	return books, nil
}

// Pending filters books down to those whose completion marker is absent.
func Pending(books []Book) []Book {
	pending := make([]Book, 0, len(books))
	for _, book := range books {
		if !book.Processed() {
			pending = append(pending, book)
		}
	}
	return pending
}
