package problems

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tOgg1/aoc2024/internal/display"
	"github.com/tOgg1/aoc2024/internal/grid"
)

// Bathroom dimensions and search bounds for day 14.
const (
	day14Width       = 101
	day14Height      = 103
	day14SafetySteps = 100
	day14SearchSteps = 10000
	day14ReportEvery = 1000
)

var robotPattern = regexp.MustCompile(`p=(-?\d+),(-?\d+) v=(-?\d+),(-?\d+)`)

type robot struct {
	x, y   int
	vx, vy int
}

// at returns the robot position after steps moves, wrapping at the edges.
func (r robot) at(steps, width, height int) (int, int) {
	return wrap(r.x+r.vx*steps, width), wrap(r.y+r.vy*steps, height)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Day14 simulates robots moving across a wrapping floor. Part 1 is the
// safety factor after 100 steps; part 2 finds the step where the robots line
// up into a picture and streams that picture to the display.
type Day14 struct {
	tx            display.Sender
	width, height int
}

// NewDay14 is the Factory for day 14.
func NewDay14(tx display.Sender) Solver {
	return newDay14(tx, day14Width, day14Height)
}

func newDay14(tx display.Sender, width, height int) *Day14 {
	return &Day14{tx: tx, width: width, height: height}
}

// Part1 implements Solver.
func (d *Day14) Part1(ctx context.Context, input string) (uint64, error) {
	robots, err := parseRobots(input)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return d.safetyFactor(robots, day14SafetySteps), nil
}

// safetyFactor multiplies the robot counts of the four quadrants. Robots on
// the middle row or column belong to no quadrant.
func (d *Day14) safetyFactor(robots []robot, steps int) uint64 {
	midX, midY := d.width/2, d.height/2
	var quadrants [4]uint64
	for _, r := range robots {
		x, y := r.at(steps, d.width, d.height)
		if x == midX || y == midY {
			continue
		}
		q := 0
		if x > midX {
			q++
		}
		if y > midY {
			q += 2
		}
		quadrants[q]++
	}
	return quadrants[0] * quadrants[1] * quadrants[2] * quadrants[3]
}

// Part2 implements Solver.
func (d *Day14) Part2(ctx context.Context, input string) (uint64, error) {
	robots, err := parseRobots(input)
	if err != nil {
		return 0, err
	}

	bestStep, bestScore := 0, -1
	for step := 0; step < day14SearchSteps; step++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if score := d.rowSpread(robots, step); score > bestScore {
			bestStep, bestScore = step, score
		}
		if step > 0 && step%day14ReportEvery == 0 {
			row := display.ToneRow(display.ToneMuted,
				fmt.Sprintf("step %d: best %d at step %d", step, bestScore, bestStep))
			if err := progress(d.tx, display.NewRow{Row: row}); err != nil {
				return 0, err
			}
		}
	}

	if err := progress(d.tx, display.GridOnly(d.picture(robots, bestStep))); err != nil {
		return 0, err
	}
	result := uint64(bestStep)
	if err := progress(d.tx, display.Part2Only(result)); err != nil {
		return 0, err
	}
	return result, nil
}

// rowSpread is the largest number of distinct columns occupied in any one
// row. A picture shows up as a long horizontal run of robots.
func (d *Day14) rowSpread(robots []robot, steps int) int {
	seen := make(map[[2]int]struct{}, len(robots))
	perRow := make(map[int]int)
	best := 0
	for _, r := range robots {
		x, y := r.at(steps, d.width, d.height)
		key := [2]int{x, y}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		perRow[y]++
		best = max(best, perRow[y])
	}
	return best
}

func (d *Day14) picture(robots []robot, steps int) *grid.Grid[rune] {
	g := grid.New(d.height, d.width, '.')
	for _, r := range robots {
		x, y := r.at(steps, d.width, d.height)
		g.Set(grid.Point{Row: y, Col: x}, '#')
	}
	return g
}

func parseRobots(input string) ([]robot, error) {
	var robots []robot
	for i, line := range lines(input) {
		m := robotPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: malformed robot %q", i+1, line)
		}
		var vals [4]int
		for j := range vals {
			v, err := strconv.Atoi(m[j+1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			vals[j] = v
		}
		robots = append(robots, robot{x: vals[0], y: vals[1], vx: vals[2], vy: vals[3]})
	}
	return robots, nil
}
