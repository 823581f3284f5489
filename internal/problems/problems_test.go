package problems

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/aoc2024/internal/display"
)

type recorder struct {
	mu     sync.Mutex
	events []display.Event
	err    error
}

func (r *recorder) Send(ev display.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) rows() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		if row, ok := ev.(display.NewRow); ok {
			out = append(out, row.Row.String())
		}
	}
	return out
}

func (r *recorder) updates() []display.StateUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []display.StateUpdate
	for _, ev := range r.events {
		if u, ok := ev.(display.StateUpdate); ok {
			out = append(out, u)
		}
	}
	return out
}

type halfSolver struct {
	Unsolved
}

func (halfSolver) Part2(context.Context, string) (uint64, error) { return 7, nil }

type failingSolver struct {
	Unsolved
}

func (failingSolver) Part1(context.Context, string) (uint64, error) {
	return 0, errors.New("boom")
}

func TestSolve(t *testing.T) {
	ctx := context.Background()

	t.Run("unsolved", func(t *testing.T) {
		answer, err := Solve(ctx, Unsolved{}, "")
		require.ErrorIs(t, err, ErrNotImplemented)
		require.Nil(t, answer.Part1)
		require.Nil(t, answer.Part2)
	})

	t.Run("partial", func(t *testing.T) {
		answer, err := Solve(ctx, halfSolver{}, "")
		require.NoError(t, err)
		require.Nil(t, answer.Part1)
		require.NotNil(t, answer.Part2)
		require.Equal(t, uint64(7), *answer.Part2)
		require.Equal(t, "Part 1: not implemented\nPart 2: 7", answer.String())
	})

	t.Run("error is wrapped with part", func(t *testing.T) {
		_, err := Solve(ctx, failingSolver{}, "")
		require.EqualError(t, err, "part 1: boom")
	})
}

func TestRegistry(t *testing.T) {
	r := Default()

	_, err := r.Lookup(0)
	require.ErrorIs(t, err, ErrUnknownDay)
	_, err = r.Lookup(26)
	require.ErrorIs(t, err, ErrUnknownDay)

	f, err := r.Lookup(2)
	require.NoError(t, err)
	require.False(t, r.Solved(2))
	_, err = Solve(context.Background(), f(display.Discard), "")
	require.ErrorIs(t, err, ErrNotImplemented)

	require.True(t, r.Solved(1))
	require.True(t, r.Solved(14))
	require.Equal(t, []int{1, 14}, r.SolvedDays())
	require.Len(t, r.Days(), 25)

	require.ErrorIs(t, r.Register(30, NewDay1), ErrUnknownDay)
	require.Error(t, r.Register(1, NewDay1))
	require.Error(t, r.Register(3, nil))
	require.NoError(t, r.Register(3, NewDay1))
	require.True(t, r.Solved(3))
}

const day1Sample = `3   4
4   3
2   5
1   3
3   9
3   3`

func TestDay1(t *testing.T) {
	tests := []struct {
		name  string
		input string
		part1 uint64
		part2 uint64
	}{
		{name: "sample", input: day1Sample, part1: 11, part2: 31},
		{name: "mirrored lists", input: "3 1\n2 2\n1 3", part1: 0, part2: 6},
		{name: "single pair", input: "10 4\n", part1: 6, part2: 0},
		{name: "empty", input: "", part1: 0, part2: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDay1(display.Discard)
			got, err := s.Part1(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.part1, got)

			got, err = s.Part2(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.part2, got)
		})
	}
}

func TestDay1StreamsRowsAndTotals(t *testing.T) {
	rec := &recorder{}
	s := NewDay1(rec)

	_, err := s.Part1(context.Background(), "3 1\n5 9")
	require.NoError(t, err)

	require.Equal(t, []string{"3  1  -> 2", "5  9  -> 4"}, rec.rows())
	updates := rec.updates()
	require.Len(t, updates, 2)
	require.Equal(t, uint64(2), *updates[0].Part1)
	require.Equal(t, uint64(6), *updates[1].Part1)
	require.Nil(t, updates[1].Part2)

	// Rows arrive before the total they contribute to.
	_, isRow := rec.events[0].(display.NewRow)
	require.True(t, isRow)
}

func TestDay1Errors(t *testing.T) {
	s := NewDay1(display.Discard)

	_, err := s.Part1(context.Background(), "1 2 3")
	require.ErrorContains(t, err, "line 1")
	_, err = s.Part2(context.Background(), "1 x")
	require.ErrorContains(t, err, "line 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Part1(ctx, day1Sample)
	require.ErrorIs(t, err, context.Canceled)

	closed := &recorder{err: display.ErrChannelClosed}
	_, err = NewDay1(closed).Part2(context.Background(), day1Sample)
	require.ErrorIs(t, err, display.ErrChannelClosed)
}

const day14Sample = `p=0,4 v=3,-3
p=6,3 v=-1,-3
p=10,3 v=-1,2
p=2,0 v=2,-1
p=0,0 v=1,3
p=3,0 v=-2,-2
p=7,6 v=-1,-3
p=3,0 v=-1,-2
p=9,3 v=2,3
p=7,3 v=-1,2
p=2,4 v=2,-3
p=9,5 v=-3,-3`

func TestDay14SafetyFactor(t *testing.T) {
	robots, err := parseRobots(day14Sample)
	require.NoError(t, err)
	require.Len(t, robots, 12)

	d := newDay14(display.Discard, 11, 7)
	require.Equal(t, uint64(12), d.safetyFactor(robots, 100))
}

func TestRobotWraps(t *testing.T) {
	r := robot{x: 2, y: 4, vx: 2, vy: -3}
	want := [][2]int{{4, 1}, {6, 5}, {8, 2}, {10, 6}, {1, 3}}
	for i, w := range want {
		x, y := r.at(i+1, 11, 7)
		require.Equal(t, w, [2]int{x, y}, "step %d", i+1)
	}
}

func TestDay14Part2SendsPicture(t *testing.T) {
	// Five robots that line up on row 0 after two steps.
	input := `p=0,2 v=0,-1
p=1,4 v=0,-2
p=2,6 v=0,-3
p=3,1 v=0,3
p=4,3 v=0,2`

	rec := &recorder{}
	d := newDay14(rec, 7, 7)
	got, err := d.Part2(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got)

	var snapshot *display.StateUpdate
	for _, u := range rec.updates() {
		if u.Grid != nil {
			snapshot = &u
		}
	}
	require.NotNil(t, snapshot)
	require.Equal(t, "#####..", snapshot.Grid.Render(func(r rune) rune { return r })[0])

	rows := rec.rows()
	require.NotEmpty(t, rows)
	require.Equal(t, "step 1000: best 5 at step 2", rows[0])
}

func TestDay14Part2HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDay14(display.Discard).Part2(ctx, day14Sample)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseRobotsRejectsGarbage(t *testing.T) {
	_, err := parseRobots("p=1,2 v=3")
	require.ErrorContains(t, err, "malformed robot")
}
