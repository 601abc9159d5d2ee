package boot

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bindery/internal/config"
	"bindery/internal/handoff"
	"bindery/internal/history"
	"bindery/internal/logging"
	"bindery/internal/processor"
	"bindery/internal/services"
)

// Orchestrator drives the boot sequence: scan, conditionally process each
// pending artifact, then hand control to the server. Processing is strictly
// sequential and fail-fast; a processor failure aborts the remaining
// artifacts and the handoff.
type Orchestrator struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  processor.Client
	handoff handoff.Handoff
	store   *history.Store
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithProcessor substitutes the processor client, primarily for tests.
func WithProcessor(client processor.Client) Option {
	return func(o *Orchestrator) {
		if client != nil {
			o.client = client
		}
	}
}

// WithHandoff substitutes the handoff implementation.
func WithHandoff(h handoff.Handoff) Option {
	return func(o *Orchestrator) {
		if h != nil {
			o.handoff = h
		}
	}
}

// WithHistory attaches the boot ledger. The orchestrator closes the store
// before a process-replacing handoff; ledger errors never abort the boot.
func WithHistory(store *history.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// New constructs an orchestrator wired from config defaults.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "boot"),
	}
	o.client = processor.NewCLI(
		processor.WithBinary(cfg.Processor.Binary),
		processor.WithArgs(cfg.Processor.Args),
		processor.WithLogger(o.logger),
	)
	if cfg.Server.ExecHandoff {
		o.handoff = handoff.Execve{}
	} else {
		o.handoff = &handoff.Forwarding{Logger: o.logger}
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the full boot sequence and, on success, transfers control to
// the server. serverArgv overrides the configured server command when
// non-empty. With the execve handoff, Run does not return on success.
func (o *Orchestrator) Run(ctx context.Context, serverArgv []string) error {
	argv := serverArgv
	if len(argv) == 0 {
		argv = o.cfg.Server.Command
	}
	if len(argv) == 0 {
		return services.Wrap(services.ErrConfiguration, "boot", "run",
			"no server command configured (set [server].command or pass arguments after --)", nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)

	lock, err := o.acquireLock(logger)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	plan, failure := o.processPending(ctx, runID, logger)
	if failure != nil {
		return failure
	}

	o.finishRun(ctx, logger, runID, history.RunStatusHandoff, len(plan.Pending), 0)
	logger.Info("handing off to server",
		logging.String(logging.FieldEventType, "handoff"),
		logging.String("command", argv[0]),
		logging.Int("args", len(argv)-1),
	)

	// Release shared resources before exec replaces the process image;
	// otherwise the lock file descriptor and the sqlite handle would stay
	// open inside the server.
	if o.store != nil {
		_ = o.store.Close()
	}
	_ = lock.Unlock()

	return o.handoff.Exec(argv, nil)
}

// Process runs the scan-and-process portion of the boot without handing off.
func (o *Orchestrator) Process(ctx context.Context) (Plan, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)

	lock, err := o.acquireLock(logger)
	if err != nil {
		return Plan{}, err
	}
	defer func() { _ = lock.Unlock() }()

	plan, failure := o.processPending(ctx, runID, logger)
	if failure != nil {
		return plan, failure
	}
	o.finishRun(ctx, logger, runID, history.RunStatusCompleted, len(plan.Pending), 0)
	return plan, nil
}

// processPending scans the library and invokes the processor once per
// unmarked artifact, in lexical order, aborting on the first failure.
func (o *Orchestrator) processPending(ctx context.Context, runID string, logger *slog.Logger) (Plan, error) {
	plan, err := BuildPlan(o.cfg)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrConfiguration, "boot", "scan", o.cfg.Paths.LibraryDir, err)
	}

	logger.Info("library scanned",
		logging.String(logging.FieldEventType, "scan_complete"),
		logging.String("library_dir", o.cfg.Paths.LibraryDir),
		logging.Int("books", len(plan.Books)),
		logging.Int("pending", len(plan.Pending)),
	)
	o.beginRun(ctx, logger, runID, len(plan.Books), len(plan.Pending))

	for index, book := range plan.Pending {
		bookCtx := services.WithStage(services.WithBook(ctx, book.Base), "processing")
		bookLogger := logging.WithContext(bookCtx, o.logger)

		bookLogger.Info("processing artifact",
			logging.String(logging.FieldEventType, "process_start"),
			logging.String("artifact", book.Path),
			logging.Int("position", index+1),
			logging.Int("pending", len(plan.Pending)),
		)

		started := time.Now()
		processErr := o.client.Process(bookCtx, book.Path)
		o.recordInvocation(bookCtx, bookLogger, history.Invocation{
			RunID:        runID,
			Book:         book.Base,
			ArtifactPath: book.Path,
			StartedAt:    started.UTC(),
			Duration:     time.Since(started),
			Succeeded:    processErr == nil,
			Error:        errText(processErr),
		})

		if processErr != nil {
			bookLogger.Error("processing failed; aborting boot",
				logging.String(logging.FieldEventType, "process_failed"),
				logging.String("artifact", book.Path),
				logging.Error(processErr),
				logging.String(logging.FieldErrorHint, "fix the artifact or processor, then restart"),
			)
			o.finishRun(ctx, logger, runID, history.RunStatusFailed, index, 1)
			return plan, processErr
		}

		bookLogger.Info("processing complete",
			logging.String(logging.FieldEventType, "process_complete"),
			logging.Duration("duration", time.Since(started)),
		)
	}

	return plan, nil
}

func (o *Orchestrator) acquireLock(logger *slog.Logger) (*flock.Flock, error) {
	if err := o.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "boot", "lock", "", err)
	}
	lockPath := filepath.Join(o.cfg.Paths.LogDir, "bindery.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "boot", "lock", lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "boot", "lock",
			"another bindery instance is already running", nil)
	}
	logger.Debug("boot lock acquired", logging.String("lock", lockPath))
	return lock, nil
}

func (o *Orchestrator) beginRun(ctx context.Context, logger *slog.Logger, runID string, total, pending int) {
	if o.store == nil {
		return
	}
	if err := o.store.BeginRun(ctx, runID, total, pending); err != nil {
		logger.Warn("history begin failed; continuing without ledger",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.db permissions"),
		)
	}
}

func (o *Orchestrator) recordInvocation(ctx context.Context, logger *slog.Logger, inv history.Invocation) {
	if o.store == nil {
		return
	}
	if err := o.store.RecordInvocation(ctx, inv); err != nil {
		logger.Warn("history record failed", logging.Error(err))
	}
}

func (o *Orchestrator) finishRun(ctx context.Context, logger *slog.Logger, runID string, status history.RunStatus, processed, failed int) {
	if o.store == nil {
		return
	}
	if err := o.store.FinishRun(ctx, runID, status, processed, failed); err != nil {
		logger.Warn("history finish failed", logging.Error(err))
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
