package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tOgg1/aoc2024/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [day]",
		Short: "Show recorded solve runs, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.History.Enabled {
				return Exitf(ExitCodeUsage, "history is disabled (history.enabled=false)")
			}
			var q history.Query
			if len(args) > 0 {
				day, err := strconv.Atoi(args[0])
				if err != nil {
					return Exitf(ExitCodeUsage, "invalid day %q", args[0])
				}
				q.Day = day
			}
			q.Limit, _ = cmd.Flags().GetInt("limit")

			store, err := history.Open(cmd.Context(), a.cfg.HistoryPath())
			if err != nil {
				return Exitf(ExitCodeFailure, "%v", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), q)
			if err != nil {
				return Exitf(ExitCodeFailure, "%v", err)
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					strconv.Itoa(run.Day),
					formatResult(run.Part1),
					formatResult(run.Part2),
					string(run.Status),
					run.StartedAt.Local().Format(time.DateTime),
					run.Duration.String(),
					run.Error,
				})
			}
			return writeTable(cmd.OutOrStdout(),
				[]string{"ID", "DAY", "PART 1", "PART 2", "STATUS", "STARTED", "DURATION", "ERROR"}, rows)
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
