// Package problems holds the puzzle solvers and the registry that maps a day
// number to a solver.
package problems

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tOgg1/aoc2024/internal/display"
)

// Problem numbering.
const (
	FirstDay = 1
	LastDay  = 25
)

// Solver errors.
var (
	ErrNotImplemented = errors.New("not implemented")
	ErrUnknownDay     = errors.New("unknown day")
)

// Solver computes both answers of one puzzle. Implementations may report
// progress through the display.Sender they were constructed with, but always
// return their results directly.
type Solver interface {
	Part1(ctx context.Context, input string) (uint64, error)
	Part2(ctx context.Context, input string) (uint64, error)
}

// Factory builds a solver bound to an event sender.
type Factory func(tx display.Sender) Solver

// Unsolved is a Solver whose parts are not implemented. Solvers embed it to
// inherit that default for any part they do not override.
type Unsolved struct{}

// Part1 implements Solver.
func (Unsolved) Part1(context.Context, string) (uint64, error) {
	return 0, ErrNotImplemented
}

// Part2 implements Solver.
func (Unsolved) Part2(context.Context, string) (uint64, error) {
	return 0, ErrNotImplemented
}

// Answer holds the results of a solve. A nil part was not implemented.
type Answer struct {
	Part1 *uint64
	Part2 *uint64
}

func (a Answer) String() string {
	return fmt.Sprintf("Part 1: %s\nPart 2: %s", formatPart(a.Part1), formatPart(a.Part2))
}

func formatPart(v *uint64) string {
	if v == nil {
		return "not implemented"
	}
	return fmt.Sprintf("%d", *v)
}

// Solve runs part 1 then part 2. Parts returning ErrNotImplemented are left
// empty; if neither part is implemented Solve returns ErrNotImplemented.
func Solve(ctx context.Context, s Solver, input string) (Answer, error) {
	var answer Answer

	parts := []struct {
		name string
		fn   func(context.Context, string) (uint64, error)
		dst  **uint64
	}{
		{"part 1", s.Part1, &answer.Part1},
		{"part 2", s.Part2, &answer.Part2},
	}
	for _, part := range parts {
		v, err := part.fn(ctx, input)
		switch {
		case errors.Is(err, ErrNotImplemented):
			continue
		case err != nil:
			return answer, fmt.Errorf("%s: %w", part.name, err)
		}
		*part.dst = &v
	}

	if answer.Part1 == nil && answer.Part2 == nil {
		return answer, ErrNotImplemented
	}
	return answer, nil
}

// lines splits input into trimmed, non-empty lines.
func lines(input string) []string {
	raw := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// progress sends ev and wraps failures so a closed display stops the solver.
func progress(tx display.Sender, ev display.Event) error {
	if err := tx.Send(ev); err != nil {
		return fmt.Errorf("report progress: %w", err)
	}
	return nil
}
