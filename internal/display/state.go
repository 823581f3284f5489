package display

import "github.com/tOgg1/aoc2024/internal/grid"

// DefaultMaxRows bounds the row list when no limit is configured.
const DefaultMaxRows = 256

// State is the resident display state. It is owned by the render loop and
// only mutated there.
type State struct {
	Part1 *uint64
	Part2 *uint64
	// Rows is ordered most-recent-first.
	Rows []Row
	Grid *grid.Grid[rune]
}

// Merge copies the populated fields of u into s.
func (s *State) Merge(u StateUpdate) {
	if u.Part1 != nil {
		v := *u.Part1
		s.Part1 = &v
	}
	if u.Part2 != nil {
		v := *u.Part2
		s.Part2 = &v
	}
	if u.Grid != nil {
		s.Grid = u.Grid
	}
}

// PushRow prepends row and drops the oldest rows beyond max.
func (s *State) PushRow(row Row, max int) {
	if max <= 0 {
		max = DefaultMaxRows
	}
	if len(s.Rows) < max {
		s.Rows = append(s.Rows, nil)
	}
	copy(s.Rows[1:], s.Rows)
	s.Rows[0] = row
}

// Result1 returns the part 1 result, or 0 when unset.
func (s State) Result1() uint64 {
	if s.Part1 == nil {
		return 0
	}
	return *s.Part1
}

// Result2 returns the part 2 result, or 0 when unset.
func (s State) Result2() uint64 {
	if s.Part2 == nil {
		return 0
	}
	return *s.Part2
}
