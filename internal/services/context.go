package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	bookKey  contextKey = "book"
	stageKey contextKey = "stage"
)

// WithRunID annotates context with the orchestration run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithBook annotates context with the artifact base name being processed.
func WithBook(ctx context.Context, book string) context.Context {
	if book == "" {
		return ctx
	}
	return context.WithValue(ctx, bookKey, book)
}

// BookFromContext returns the artifact base name if present.
func BookFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(bookKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the orchestration stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
