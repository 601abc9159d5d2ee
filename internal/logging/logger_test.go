package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bindery/internal/logging"
	"bindery/internal/services"
)

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "bindery.log")

	logger, err := logging.New(logging.Options{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("boot started", logging.String(logging.FieldEventType, "boot_start"), logging.Int("books", 3))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if payload["msg"] != "boot started" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["event_type"] != "boot_start" {
		t.Fatalf("unexpected event_type: %v", payload["event_type"])
	}
}

func TestNewConsoleFormatsComponentAndAttrs(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "console.log")

	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := logging.NewComponentLogger(logger, "boot")
	component.Info("processing book", logging.String("book", "dracula"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "[boot]") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "book=dracula") {
		t.Fatalf("expected attr rendering, got %q", line)
	}
	if !strings.Contains(line, "INFO") {
		t.Fatalf("expected level label, got %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ctx.log")

	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-123")
	ctx = services.WithBook(ctx, "moby_dick")
	ctx = services.WithStage(ctx, "processing")

	logging.WithContext(ctx, logger).Info("invoking processor")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload[logging.FieldRunID] != "run-123" {
		t.Fatalf("missing run_id: %v", payload)
	}
	if payload[logging.FieldBook] != "moby_dick" {
		t.Fatalf("missing book: %v", payload)
	}
	if payload[logging.FieldStage] != "processing" {
		t.Fatalf("missing stage: %v", payload)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 8) {
		t.Fatal("noop logger should report disabled")
	}
	logger.Error("should not panic")
}
