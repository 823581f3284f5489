package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tOgg1/aoc2024/internal/config"
	"github.com/tOgg1/aoc2024/internal/display"
	"github.com/tOgg1/aoc2024/internal/history"
	"github.com/tOgg1/aoc2024/internal/logging"
	"github.com/tOgg1/aoc2024/internal/problems"
)

// errQuit marks a live solve the user closed before the solver finished.
var errQuit = errors.New("display closed before the solver finished")

type solveRequest struct {
	Day       int
	InputPath string
	Plain     bool
}

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [day]",
		Short: "Solve one day's puzzle",
		Long: "Solve runs both parts of a day's puzzle against <data_dir>/<day>.txt.\n" +
			"On a terminal progress is shown live until you press q. Without a day\n" +
			"the last picked or solved day is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.resolveDay(args)
			if err != nil {
				return err
			}
			input, _ := cmd.Flags().GetString("input")
			plain, _ := cmd.Flags().GetBool("plain")
			return a.solve(cmd.Context(), cmd.OutOrStdout(), solveRequest{
				Day:       day,
				InputPath: input,
				Plain:     plain,
			})
		},
	}
	cmd.Flags().StringP("input", "i", "", "Read the puzzle input from this file")
	cmd.Flags().Bool("plain", false, "Print results without the live display")
	return cmd
}

func (a *app) resolveDay(args []string) (int, error) {
	if len(args) > 0 {
		day, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return 0, Exitf(ExitCodeUsage, "invalid day %q", args[0])
		}
		return day, nil
	}

	saved, err := a.contextStore().Load()
	if err != nil {
		return 0, Exitf(ExitCodeFailure, "%v", err)
	}
	if saved.IsEmpty() {
		return 0, Exitf(ExitCodeUsage, "no day given and no previous day recorded")
	}
	return saved.LastDay, nil
}

func (a *app) contextStore() *config.ContextStore {
	return config.NewContextStore(a.cfg.ContextPath())
}

func (a *app) rememberDay(day int) {
	store := a.contextStore()
	saved, err := store.Load()
	if err != nil {
		saved = &config.Context{}
	}
	saved.SetDay(day)
	if err := store.Save(saved); err != nil {
		logging.Warn().Err(err).Msg("failed to save context")
	}
}

func (a *app) solve(ctx context.Context, out io.Writer, req solveRequest) error {
	factory, err := a.registry.Lookup(req.Day)
	if errors.Is(err, problems.ErrUnknownDay) || (err == nil && !a.registry.Solved(req.Day)) {
		fmt.Fprintf(out, "Problem %d not yet solved\n", req.Day)
		return nil
	}
	if err != nil {
		return err
	}
	a.rememberDay(req.Day)

	path := req.InputPath
	if path == "" {
		path = a.cfg.InputPath(req.Day)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Exitf(ExitCodeFailure, "read input for day %d: %v", req.Day, err)
	}

	live := !req.Plain && a.isTTY()
	run := history.Run{ID: uuid.New().String(), Day: req.Day, StartedAt: a.now()}
	logger := logging.WithRun(run.ID, req.Day)
	ctx = logging.WithContext(ctx, logger)
	logger.Info().Str("input", path).Bool("live", live).Msg("solving")

	var answer problems.Answer
	if live {
		answer, err = a.solveLive(ctx, factory, string(data))
	} else {
		answer, err = solvePlain(ctx, factory, string(data))
	}

	run.Duration = a.now().Sub(run.StartedAt)
	run.Part1, run.Part2 = answer.Part1, answer.Part2
	run.Status = runStatus(answer, err)
	if err != nil {
		run.Error = err.Error()
	}
	a.recordRun(ctx, &run)

	if errors.Is(err, problems.ErrNotImplemented) {
		fmt.Fprintf(out, "Problem %d not yet solved\n", req.Day)
		return nil
	}
	if answer.Part1 != nil || answer.Part2 != nil {
		fmt.Fprintln(out, answer.String())
	}

	switch {
	case err == nil:
		logger.Info().Dur("duration", run.Duration).Str("status", string(run.Status)).Msg("solve finished")
		return nil
	case run.Status == history.StatusCancelled:
		return Exitf(ExitCodeInterrupted, "day %d cancelled", req.Day)
	default:
		return Exitf(ExitCodeFailure, "solve day %d: %v", req.Day, err)
	}
}

// solvePlain runs the solver without a display. Streamed rows go to the
// debug log of the run logger carried by ctx.
func solvePlain(ctx context.Context, factory problems.Factory, input string) (problems.Answer, error) {
	logger := logging.FromContext(ctx)
	sender := display.SenderFunc(func(ev display.Event) error {
		if row, ok := ev.(display.NewRow); ok {
			logger.Debug().Str("row", row.Row.String()).Msg("progress")
		}
		return nil
	})
	return problems.Solve(ctx, factory(sender), input)
}

func runStatus(answer problems.Answer, err error) history.Status {
	switch {
	case err == nil && answer.Part1 != nil && answer.Part2 != nil:
		return history.StatusSolved
	case err == nil:
		return history.StatusPartial
	case errors.Is(err, problems.ErrNotImplemented):
		return history.StatusUnsolved
	case errors.Is(err, errQuit), errors.Is(err, context.Canceled):
		return history.StatusCancelled
	default:
		return history.StatusFailed
	}
}

func (a *app) recordRun(ctx context.Context, run *history.Run) {
	if !a.cfg.History.Enabled {
		return
	}
	logger := logging.FromContext(ctx)
	// Record even when the solve itself was cancelled.
	ctx = context.WithoutCancel(ctx)

	store, err := history.Open(ctx, a.cfg.HistoryPath())
	if err != nil {
		logger.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer store.Close()

	if err := store.Record(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("failed to record run")
	}
}
