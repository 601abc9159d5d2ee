package history_test

import (
	"context"
	"testing"
	"time"

	"bindery/internal/history"
	"bindery/internal/testsupport"
)

func TestRunLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if err := store.BeginRun(ctx, "run-1", 3, 2); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.RecordInvocation(ctx, history.Invocation{
		RunID:        "run-1",
		Book:         "dracula",
		ArtifactPath: "/books/dracula.epub",
		StartedAt:    time.Now().UTC(),
		Duration:     1500 * time.Millisecond,
		Succeeded:    true,
	}); err != nil {
		t.Fatalf("RecordInvocation: %v", err)
	}
	if err := store.RecordInvocation(ctx, history.Invocation{
		RunID:        "run-1",
		Book:         "moby_dick",
		ArtifactPath: "/books/moby_dick.epub",
		StartedAt:    time.Now().UTC(),
		Duration:     200 * time.Millisecond,
		Succeeded:    false,
		Error:        "processor exited with code 2",
	}); err != nil {
		t.Fatalf("RecordInvocation: %v", err)
	}
	if err := store.FinishRun(ctx, "run-1", history.RunStatusFailed, 1, 1); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != history.RunStatusFailed {
		t.Fatalf("unexpected status: %s", run.Status)
	}
	if run.BooksTotal != 3 || run.BooksPending != 2 || run.BooksProcessed != 1 || run.BooksFailed != 1 {
		t.Fatalf("unexpected counters: %+v", run)
	}
	if run.FinishedAt == nil {
		t.Fatal("expected finished_at set")
	}

	invocations, err := store.ListInvocations(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListInvocations: %v", err)
	}
	if len(invocations) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(invocations))
	}
	if invocations[0].Book != "dracula" || !invocations[0].Succeeded {
		t.Fatalf("unexpected first invocation: %+v", invocations[0])
	}
	if invocations[0].Duration != 1500*time.Millisecond {
		t.Fatalf("duration not round-tripped: %v", invocations[0].Duration)
	}
	if invocations[1].Succeeded || invocations[1].Error == "" {
		t.Fatalf("unexpected second invocation: %+v", invocations[1])
	}
}

func TestListRunsOrdersNewestFirstAndLimits(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.BeginRun(ctx, id, 0, 0); err != nil {
			t.Fatalf("BeginRun %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit applied, got %d", len(runs))
	}
	if runs[0].RunID != "run-c" {
		t.Fatalf("expected newest first, got %s", runs[0].RunID)
	}
}

func TestFinishRunUnknownRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	err := store.FinishRun(context.Background(), "missing", history.RunStatusCompleted, 0, 0)
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	if err := store.BeginRun(context.Background(), "run-1", 1, 1); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	store.Close()

	reopened := testsupport.MustOpenHistory(t, cfg)
	runs, err := reopened.ListRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListRuns after reopen: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run, got %d", len(runs))
	}
}
