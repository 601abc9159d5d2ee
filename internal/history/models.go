package history

import "time"

// RunStatus represents the lifecycle of an orchestration run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusHandoff   RunStatus = "handoff"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one boot orchestration attempt.
type Run struct {
	ID             int64
	RunID          string
	StartedAt      time.Time
	FinishedAt     *time.Time
	Status         RunStatus
	BooksTotal     int
	BooksPending   int
	BooksProcessed int
	BooksFailed    int
}

// Invocation is one processor execution within a run.
type Invocation struct {
	ID           int64
	RunID        string
	Book         string
	ArtifactPath string
	StartedAt    time.Time
	Duration     time.Duration
	Succeeded    bool
	Error        string
}
