package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/deps"
	"bindery/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("reader3"))
	_ = cfg

	results := deps.CheckBinaries([]deps.Requirement{
		{Name: "Processor", Command: "reader3"},
		{Name: "Missing", Command: "definitely-not-installed-anywhere"},
		{Name: "Unset", Command: ""},
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(results))
	}
	if !results[0].Available {
		t.Fatalf("stubbed binary should be available: %+v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("missing binary should have detail: %+v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unset command should be reported: %+v", results[2])
	}
}

func TestCheckSystemDepsUsesConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithStubbedBinaries("reader3", "reader-server"),
		testsupport.WithServerCommand("reader-server", "--host", "0.0.0.0"),
	)

	results := deps.CheckSystemDeps(cfg)
	if len(results) != 2 {
		t.Fatalf("expected processor and server statuses, got %d", len(results))
	}
	for _, status := range results {
		if !status.Available {
			t.Fatalf("expected %s available, got %+v", status.Name, status)
		}
	}
}

func TestCheckSystemDepsWithoutServerCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithServerCommand())

	results := deps.CheckSystemDeps(cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(results))
	}
	server := results[1]
	if !server.Optional {
		t.Fatalf("server without command should be optional: %+v", server)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	status := deps.CheckDirectoryAccess("Library", dir)
	if !status.Available {
		t.Fatalf("expected readable dir, got %+v", status)
	}

	missing := deps.CheckDirectoryAccess("Library", filepath.Join(dir, "absent"))
	if missing.Available || !missing.Optional {
		t.Fatalf("missing dir should be optional-unavailable: %+v", missing)
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	notDir := deps.CheckDirectoryAccess("Library", file)
	if notDir.Available {
		t.Fatalf("file should not pass directory check: %+v", notDir)
	}
}
