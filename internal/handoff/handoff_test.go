package handoff_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"bindery/internal/handoff"
	"bindery/internal/services"
)

func writeStub(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "stub-server")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestForwardingPropagatesZeroExit(t *testing.T) {
	stub := writeStub(t, "exit 0\n")
	fwd := &handoff.Forwarding{}
	if err := fwd.Exec([]string{stub}, nil); err != nil {
		t.Fatalf("expected nil for clean exit, got %v", err)
	}
}

func TestForwardingPropagatesNonZeroExit(t *testing.T) {
	stub := writeStub(t, "exit 7\n")
	fwd := &handoff.Forwarding{}
	err := fwd.Exec([]string{stub}, nil)

	var exitErr *handoff.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 7 {
		t.Fatalf("expected code 7, got %d", exitErr.Code)
	}
}

func TestForwardingPassesArguments(t *testing.T) {
	record := filepath.Join(t.TempDir(), "argv")
	stub := writeStub(t, `echo "$1 $2" > `+record+`
exit 0
`)
	fwd := &handoff.Forwarding{}
	if err := fwd.Exec([]string{stub, "--host", "0.0.0.0"}, nil); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read argv record: %v", err)
	}
	if string(data) != "--host 0.0.0.0\n" {
		t.Fatalf("unexpected argv: %q", string(data))
	}
}

func TestForwardingRejectsEmptyCommand(t *testing.T) {
	fwd := &handoff.Forwarding{}
	err := fwd.Exec(nil, nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestExecveRejectsMissingBinary(t *testing.T) {
	err := handoff.Execve{}.Exec([]string{filepath.Join(t.TempDir(), "absent-server")}, nil)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before exec, got %v", err)
	}
}

func TestExecveRejectsEmptyCommand(t *testing.T) {
	err := handoff.Execve{}.Exec(nil, nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
