package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/tOgg1/aoc2024/internal/display"
	"github.com/tOgg1/aoc2024/internal/logging"
	"github.com/tOgg1/aoc2024/internal/problems"
)

type loopRunner interface {
	Run(ctx context.Context) (display.State, error)
}

type pollRunner interface {
	Run(ctx context.Context) error
}

// solveLive runs the solver behind the inline display until the user quits.
func (a *app) solveLive(ctx context.Context, factory problems.Factory, input string) (problems.Answer, error) {
	// The display owns the terminal; keep log lines from tearing it.
	if a.cfg.Logging.File == "" {
		restore := logging.Redirect(io.Discard)
		defer restore()
	}

	terminal, err := display.OpenTerminal(a.termIn, a.termOut, display.TerminalConfig{
		Height: a.cfg.TUI.ViewportHeight,
		Theme:  themeFor(a.cfg),
	})
	if err != nil {
		return problems.Answer{}, fmt.Errorf("open display: %w", err)
	}
	defer terminal.Close()

	keys, err := display.NewStdinKeys(a.termIn)
	if err != nil {
		return problems.Answer{}, err
	}
	defer keys.Close()

	events := display.NewChannel()
	loop := display.NewLoop(events, terminal, loopConfigFor(a.cfg))
	poller := display.NewPoller(keys, events, a.cfg.TUI.TickInterval)

	answer, err := runSession(ctx, events, loop, poller, factory(events), input)
	if closeErr := terminal.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("restore terminal: %w", closeErr)
	}
	return answer, err
}

// runSession runs the render loop, the input poller and the solver together.
// The loop decides when the session ends: once it returns, the channel is
// closed and the other members are cancelled.
func runSession(ctx context.Context, events *display.Channel, loop loopRunner, poller pollRunner, solver problems.Solver, input string) (problems.Answer, error) {
	logger := logging.Component("session")

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var (
		answer   problems.Answer
		solveErr error
	)

	g.Go(func() error {
		defer cancel()
		defer events.Close()
		_, err := loop.Run(gctx)
		return err
	})
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		answer, solveErr = problems.Solve(gctx, solver, input)
		publishOutcome(events, answer, solveErr)
		logger.Debug().Err(solveErr).Msg("solver finished")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return answer, err
	}

	if solveErr != nil && parent.Err() == nil &&
		(errors.Is(solveErr, context.Canceled) || errors.Is(solveErr, display.ErrChannelClosed)) {
		return answer, errQuit
	}
	return answer, solveErr
}

// publishOutcome pushes the final results and a summary row. Failures are
// ignored: the display may already be gone.
func publishOutcome(events display.Sender, answer problems.Answer, err error) {
	_ = events.Send(display.StateUpdate{Part1: answer.Part1, Part2: answer.Part2})

	var row display.Row
	switch {
	case err == nil:
		row = display.ToneRow(display.ToneGood, "done, press q to quit")
	case errors.Is(err, problems.ErrNotImplemented):
		row = display.ToneRow(display.ToneMuted, "not implemented, press q to quit")
	default:
		row = display.ToneRow(display.ToneBad, "error: "+err.Error())
	}
	_ = events.Send(display.NewRow{Row: row})
}
