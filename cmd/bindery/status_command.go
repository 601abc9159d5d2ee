package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bindery/internal/boot"
	"bindery/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency, and library state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Library:   %s\n", cfg.Paths.LibraryDir)
			fmt.Fprintf(out, "Processor: %s\n", commandLine(cfg.Processor.Binary, cfg.Processor.Args))
			fmt.Fprintf(out, "Server:    %s\n", strings.Join(cfg.Server.Command, " "))
			fmt.Fprintf(out, "History:   %s\n", yesNo(cfg.History.Enabled))
			fmt.Fprintln(out)

			statuses := deps.CheckSystemDeps(cfg)
			statuses = append(statuses, deps.CheckDirectoryAccess("Library", cfg.Paths.LibraryDir))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{status.Name, statusLabel(status), statusDetail(status)})
			}
			printTable(out, []string{"Dependency", "Status", "Detail"}, rows, []columnAlignment{
				alignLeft, alignLeft, alignLeft,
			})

			plan, err := boot.BuildPlan(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d book(s), %d processed, %d pending\n",
				len(plan.Books), plan.Processed(), len(plan.Pending))
			return nil
		},
	}
}

func commandLine(binary string, args []string) string {
	parts := append([]string{binary}, args...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

func statusLabel(status deps.Status) string {
	switch {
	case status.Available:
		return "ok"
	case status.Optional:
		return "optional"
	default:
		return "missing"
	}
}

func statusDetail(status deps.Status) string {
	if status.Detail != "" {
		return status.Detail
	}
	return status.Command
}
