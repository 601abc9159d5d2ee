package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bindery/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent orchestration runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				invocations, err := store.ListInvocations(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(invocations) == 0 {
					fmt.Fprintf(out, "No invocations recorded for run %s\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(invocations))
				for _, inv := range invocations {
					rows = append(rows, []string{
						inv.Book,
						inv.StartedAt.Local().Format("2006-01-02 15:04:05"),
						inv.Duration.Round(time.Millisecond).String(),
						invocationOutcome(inv),
					})
				}
				printTable(out, []string{"Book", "Started", "Duration", "Outcome"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.RunID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Status),
					fmt.Sprintf("%d", run.BooksTotal),
					fmt.Sprintf("%d", run.BooksProcessed),
					fmt.Sprintf("%d", run.BooksFailed),
				})
			}
			printTable(out, []string{"Run", "Started", "Status", "Total", "Processed", "Failed"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight})
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "show invocations for a specific run ID")
	return cmd
}

func invocationOutcome(inv history.Invocation) string {
	if inv.Succeeded {
		return "ok"
	}
	if inv.Error != "" {
		return inv.Error
	}
	return "failed"
}
