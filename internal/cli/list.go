package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tOgg1/aoc2024/internal/history"
	"github.com/tOgg1/aoc2024/internal/logging"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List days and their solver status",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			solvedOnly, _ := cmd.Flags().GetBool("solved")
			latest := a.latestRuns(cmd.Context())

			rows := make([][]string, 0, len(a.registry.Days()))
			for _, day := range a.registry.Days() {
				solved := a.registry.Solved(day)
				if solvedOnly && !solved {
					continue
				}
				rows = append(rows, []string{
					strconv.Itoa(day),
					formatYesNo(solved),
					describeRun(latest[day]),
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"DAY", "SOLVER", "LAST RUN"}, rows)
		},
	}
	cmd.Flags().Bool("solved", false, "Only list days with a solver")
	return cmd
}

// latestRuns returns the most recent recorded run per day. History failures
// are logged and yield an empty map.
func (a *app) latestRuns(ctx context.Context) map[int]*history.Run {
	runs := make(map[int]*history.Run)
	if !a.cfg.History.Enabled {
		return runs
	}

	store, err := history.Open(ctx, a.cfg.HistoryPath())
	if err != nil {
		logging.Warn().Err(err).Msg("history unavailable")
		return runs
	}
	defer store.Close()

	for _, day := range a.registry.Days() {
		run, err := store.Latest(ctx, day)
		if errors.Is(err, history.ErrRunNotFound) {
			continue
		}
		if err != nil {
			logging.Warn().Err(err).Int("day", day).Msg("failed to read history")
			return runs
		}
		runs[day] = &run
	}
	return runs
}

func describeRun(run *history.Run) string {
	if run == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s / %s", run.Status, formatResult(run.Part1), formatResult(run.Part2))
}
