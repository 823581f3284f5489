package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tOgg1/aoc2024/internal/picker"
)

func newPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a day interactively, then solve it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.isTTY() {
				return Exitf(ExitCodeUsage, "pick needs an interactive terminal; use aoc solve <day>")
			}
			return a.pickAndSolve(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *app) pickAndSolve(ctx context.Context, out io.Writer) error {
	latest := a.latestRuns(ctx)
	items := picker.Items(a.registry)
	for i := range items {
		if run := latest[items[i].Day]; run != nil {
			items[i].Note = "last: " + describeRun(run)
		}
	}

	initial := 1
	if saved, err := a.contextStore().Load(); err == nil && !saved.IsEmpty() {
		initial = saved.LastDay
	}

	day, ok, err := picker.Run(ctx, items, picker.Options{
		Initial: initial,
		Theme:   themeFor(a.cfg),
		Input:   a.termIn,
		Output:  a.termOut,
	})
	if err != nil {
		return Exitf(ExitCodeFailure, "%v", err)
	}
	if !ok {
		return nil
	}
	return a.solve(ctx, out, solveRequest{Day: day})
}
