package boot

import (
	"bindery/internal/config"
	"bindery/internal/shelf"
)

// Plan captures one scan of the library: every discovered artifact and the
// subset still awaiting processing.
type Plan struct {
	Books   []shelf.Book
	Pending []shelf.Book
}

// Processed returns the artifacts whose completion marker already exists.
func (p Plan) Processed() int {
	return len(p.Books) - len(p.Pending)
}

// BuildPlan scans the configured library directory and partitions the
// result by marker presence. An absent or empty library yields an empty
// plan, not an error.
func BuildPlan(cfg *config.Config) (Plan, error) {
	books, err := shelf.Scan(cfg.Paths.LibraryDir, cfg.Scan.Extension, cfg.Scan.MarkerSuffix)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Books: books, Pending: shelf.Pending(books)}, nil
}
