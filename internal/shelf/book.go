package shelf

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Book is a single artifact discovered in the library directory together
// with its derived completion marker path.
type Book struct {
	// Path is the absolute artifact location.
	Path string
	// Base is the file name without its extension.
	Base string
	// MarkerPath is the sibling directory whose existence signals that the
	// artifact was already processed.
	MarkerPath string
}

// Processed reports whether the completion marker exists as a directory.
// Existence alone is authoritative; contents and freshness are never
// inspected, and a regular file at the marker path counts as unprocessed.
func (b Book) Processed() bool {
	info, err := os.Stat(b.MarkerPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

var titleCaser = cases.Title(language.Und)

// DisplayTitle derives a human-readable title from the artifact base name
// for table output.
func (b Book) DisplayTitle() string {
	if b.Base == "" {
		return "Unknown Book"
	}
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range b.Base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Book"
	}
	return titleCaser.String(title)
}

// NewBook builds a Book for the given artifact path using the marker suffix.
func NewBook(path, markerSuffix string) Book {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Book{
		Path:       path,
		Base:       base,
		MarkerPath: filepath.Join(filepath.Dir(path), base+markerSuffix),
	}
}
