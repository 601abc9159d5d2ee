package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProcessor()
	c.normalizeServer()
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProcessor() {
	c.Processor.Binary = strings.TrimSpace(c.Processor.Binary)
	if c.Processor.Binary == "" {
		if value, ok := os.LookupEnv("BINDERY_PROCESSOR"); ok && strings.TrimSpace(value) != "" {
			c.Processor.Binary = strings.TrimSpace(value)
		} else {
			c.Processor.Binary = defaultProcessorBinary
		}
	}
	args := make([]string, 0, len(c.Processor.Args))
	for _, arg := range c.Processor.Args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.Processor.Args = args
}

func (c *Config) normalizeServer() {
	command := make([]string, 0, len(c.Server.Command))
	for _, part := range c.Server.Command {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			command = append(command, trimmed)
		}
	}
	c.Server.Command = command
}

func (c *Config) normalizeScan() {
	c.Scan.Extension = strings.ToLower(strings.TrimSpace(c.Scan.Extension))
	if c.Scan.Extension == "" {
		c.Scan.Extension = defaultScanExtension
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") {
		c.Scan.Extension = "." + c.Scan.Extension
	}
	c.Scan.MarkerSuffix = strings.TrimSpace(c.Scan.MarkerSuffix)
	if c.Scan.MarkerSuffix == "" {
		c.Scan.MarkerSuffix = defaultMarkerSuffix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
