package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bindery/internal/boot"
	"bindery/internal/config"
	"bindery/internal/history"
	"bindery/internal/logging"
	"bindery/internal/processor"
	"bindery/internal/services"
	"bindery/internal/shelf"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process [artifact]",
		Short: "Run the processor for pending books without starting the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				return processOne(cmd, cfg, logger, args[0])
			}

			opts := make([]boot.Option, 0, 1)
			if cfg.History.Enabled {
				store, histErr := history.Open(cfg)
				if histErr != nil {
					logger.Warn("history unavailable; continuing without ledger", logging.Error(histErr))
				} else {
					defer store.Close()
					opts = append(opts, boot.WithHistory(store))
				}
			}

			orch := boot.New(cfg, logger, opts...)
			plan, err := orch.Process(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Processed %d of %d book(s); %d already had bundles\n",
				len(plan.Pending), len(plan.Books), plan.Processed())
			return nil
		},
	}
}

func processOne(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, arg string) error {
	path, err := resolveArtifact(cfg, arg)
	if err != nil {
		return err
	}
	book := shelf.NewBook(path, cfg.Scan.MarkerSuffix)
	out := cmd.OutOrStdout()
	if book.Processed() {
		fmt.Fprintf(out, "%s already has a bundle at %s\n", book.Base, book.MarkerPath)
		return nil
	}

	client := processor.NewCLI(
		processor.WithBinary(cfg.Processor.Binary),
		processor.WithArgs(cfg.Processor.Args),
		processor.WithLogger(logger),
	)
	if err := client.Process(cmd.Context(), book.Path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Processed %s\n", book.Base)
	return nil
}

func resolveArtifact(cfg *config.Config, arg string) (string, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return "", services.Wrap(services.ErrValidation, "process", "resolve", "artifact argument is empty", nil)
	}
	if !strings.ContainsAny(trimmed, "/\\") {
		if !strings.HasSuffix(strings.ToLower(trimmed), cfg.Scan.Extension) {
			trimmed += cfg.Scan.Extension
		}
		return filepath.Join(cfg.Paths.LibraryDir, trimmed), nil
	}
	return filepath.Abs(trimmed)
}
