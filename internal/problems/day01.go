package problems

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tOgg1/aoc2024/internal/display"
)

// Day1 compares two location lists: part 1 sums the distances between the
// sorted lists, part 2 sums each left value times its count in the right list.
type Day1 struct {
	tx display.Sender
}

// NewDay1 is the Factory for day 1.
func NewDay1(tx display.Sender) Solver {
	return &Day1{tx: tx}
}

// Part1 implements Solver.
func (d *Day1) Part1(ctx context.Context, input string) (uint64, error) {
	left, right, err := parseLocationLists(input)
	if err != nil {
		return 0, err
	}
	slices.Sort(left)
	slices.Sort(right)

	var total uint64
	for i := range left {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		dist := absDiff(left[i], right[i])
		total += dist

		tone := display.TonePlain
		if dist == 0 {
			tone = display.ToneMuted
		}
		row := display.ToneRow(tone, fmt.Sprintf("%d  %d  -> %d", left[i], right[i], dist))
		if err := progress(d.tx, display.NewRow{Row: row}); err != nil {
			return 0, err
		}
		if err := progress(d.tx, display.Part1Only(total)); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Part2 implements Solver.
func (d *Day1) Part2(ctx context.Context, input string) (uint64, error) {
	left, right, err := parseLocationLists(input)
	if err != nil {
		return 0, err
	}

	counts := make(map[uint64]uint64, len(right))
	for _, n := range right {
		counts[n]++
	}

	var total uint64
	for _, n := range left {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		count := counts[n]
		score := n * count
		total += score

		row := display.Row{
			{Text: fmt.Sprintf("%d x %d", n, count), Tone: display.ToneMuted},
			{Text: fmt.Sprintf(" = %d", score)},
		}
		if count > 0 {
			row[1].Tone = display.ToneGood
		}
		if err := progress(d.tx, display.NewRow{Row: row}); err != nil {
			return 0, err
		}
		if err := progress(d.tx, display.Part2Only(total)); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func parseLocationLists(input string) ([]uint64, []uint64, error) {
	var left, right []uint64
	for i, line := range lines(input) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, nil, fmt.Errorf("line %d: want 2 numbers, got %d", i+1, len(fields))
		}
		l, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		r, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		left = append(left, l)
		right = append(right, r)
	}
	return left, right, nil
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
