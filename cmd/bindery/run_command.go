package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bindery/internal/boot"
	"bindery/internal/config"
	"bindery/internal/deps"
	"bindery/internal/handoff"
	"bindery/internal/history"
	"bindery/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var noExec bool

	cmd := &cobra.Command{
		Use:   "run [-- server command...]",
		Short: "Process pending books, then hand control to the reader server",
		Long: "run is the container entrypoint. It scans the library, invokes the\n" +
			"processor for every book without a data bundle, and finally replaces\n" +
			"itself with the reader server. Arguments after -- override the\n" +
			"configured server command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runBoot(cmd.Context(), cfg, args, noExec)
		},
	}

	cmd.Flags().BoolVar(&noExec, "no-exec", false,
		"Supervise the server as a child instead of replacing the process")
	return cmd
}

func runBoot(cmdCtx context.Context, cfg *config.Config, serverArgv []string, noExec bool) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	runStamp := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("bindery-%s.log", runStamp))
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "bindery-*.log", Exclude: []string{logPath}},
	)
	logDependencySnapshot(logger, cfg)

	opts := make([]boot.Option, 0, 2)
	if cfg.History.Enabled {
		store, histErr := history.Open(cfg)
		if histErr != nil {
			logger.Warn("history unavailable; continuing without ledger",
				logging.Error(histErr),
				logging.String(logging.FieldErrorHint, "check log_dir permissions"),
			)
		} else {
			defer store.Close()
			opts = append(opts, boot.WithHistory(store))
		}
	}
	if noExec {
		opts = append(opts, boot.WithHandoff(&handoff.Forwarding{Logger: logger}))
	}

	orch := boot.New(cfg, logger, opts...)
	return orch.Run(signalCtx, serverArgv)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.String("library_dir", cfg.Paths.LibraryDir),
	}
	for _, status := range deps.CheckSystemDeps(cfg) {
		key := strings.ToLower(status.Name)
		attrs = append(attrs,
			logging.Bool(key+"_available", status.Available),
			logging.String(key+"_binary", status.Command),
		)
	}
	logger.Info("dependency snapshot", logging.Args(attrs...)...)
}
