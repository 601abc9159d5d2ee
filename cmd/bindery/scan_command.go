package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/boot"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List library artifacts and their processing state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			plan, err := boot.BuildPlan(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plan.Books) == 0 {
				fmt.Fprintf(out, "No %s artifacts found in %s\n", cfg.Scan.Extension, cfg.Paths.LibraryDir)
				return nil
			}

			rows := make([][]string, 0, len(plan.Books))
			for _, book := range plan.Books {
				state := "pending"
				if book.Processed() {
					state = "processed"
				}
				rows = append(rows, []string{book.DisplayTitle(), book.Base + cfg.Scan.Extension, state})
			}
			printTable(out, []string{"Title", "File", "State"}, rows, nil)
			fmt.Fprintf(out, "%d book(s), %d processed, %d pending\n",
				len(plan.Books), plan.Processed(), len(plan.Pending))
			return nil
		},
	}
}
