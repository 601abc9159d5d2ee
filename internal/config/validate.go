package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the normalized configuration for values bindery cannot
// operate with. Server.Command may stay empty here because the run command
// accepts the server argv on its own command line.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return fmt.Errorf("paths.library_dir must not be empty")
	}
	if !filepath.IsAbs(c.Paths.LibraryDir) {
		return fmt.Errorf("paths.library_dir must be absolute after expansion, got %q", c.Paths.LibraryDir)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("paths.log_dir must not be empty")
	}
	if strings.TrimSpace(c.Processor.Binary) == "" {
		return fmt.Errorf("processor.binary must not be empty")
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") || len(c.Scan.Extension) < 2 {
		return fmt.Errorf("scan.extension must be a dotted extension, got %q", c.Scan.Extension)
	}
	if strings.ContainsAny(c.Scan.MarkerSuffix, "/\\") {
		return fmt.Errorf("scan.marker_suffix must not contain path separators, got %q", c.Scan.MarkerSuffix)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
