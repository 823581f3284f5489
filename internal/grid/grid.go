// Package grid provides a generic rectangular grid used as the map
// abstraction by puzzle solvers and as the snapshot payload of the display.
package grid

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"unicode"
)

// Grid errors.
var (
	ErrRagged      = errors.New("grid rows have different lengths")
	ErrInvalidCell = errors.New("invalid grid cell")
)

// Point is a row/column coordinate. Coordinates are signed so callers can
// probe off the grid and ask InBounds instead of wrapping.
type Point struct {
	Row int
	Col int
}

// Directions in reading order: up, right, down, left.
var (
	Up    = Point{Row: -1}
	Right = Point{Col: 1}
	Down  = Point{Row: 1}
	Left  = Point{Col: -1}
)

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Neighbours returns the four orthogonal neighbours of p.
func (p Point) Neighbours() [4]Point {
	return [4]Point{p.Add(Up), p.Add(Right), p.Add(Down), p.Add(Left)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ParseFunc converts one input character into a cell value. It reports false
// for characters that have no cell value.
type ParseFunc[T any] func(r rune) (T, bool)

// Grid is a rectangular array of cells. rows and cols always match the
// extents of cells.
type Grid[T any] struct {
	cells [][]T
	rows  int
	cols  int
}

// New returns a rows x cols grid filled with fill.
func New[T any](rows, cols int, fill T) *Grid[T] {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 || rows == 0 {
		cols = 0
	}
	cells := make([][]T, rows)
	for r := range cells {
		row := make([]T, cols)
		for c := range row {
			row[c] = fill
		}
		cells[r] = row
	}
	return &Grid[T]{cells: cells, rows: rows, cols: cols}
}

// FromRows builds a grid that takes ownership of rows.
func FromRows[T any](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 {
		return &Grid[T]{}, nil
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, i, len(row), cols)
		}
	}
	return &Grid[T]{cells: rows, rows: len(rows), cols: cols}, nil
}

// Parse splits input into lines and converts each character with parse.
// Whitespace and characters parse rejects are dropped from their row; the
// remaining rows must all have the same length.
func Parse[T any](input string, parse ParseFunc[T]) (*Grid[T], error) {
	return parseLines(input, parse, false)
}

// ParseStrict is Parse but fails on any non-whitespace character that parse
// rejects.
func ParseStrict[T any](input string, parse ParseFunc[T]) (*Grid[T], error) {
	return parseLines(input, parse, true)
}

func parseLines[T any](input string, parse ParseFunc[T], strict bool) (*Grid[T], error) {
	input = strings.TrimRight(input, "\r\n")
	if input == "" {
		return &Grid[T]{}, nil
	}

	lines := strings.Split(input, "\n")
	rows := make([][]T, 0, len(lines))
	for lineNo, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		row := make([]T, 0, len(line))
		for col, r := range []rune(line) {
			if unicode.IsSpace(r) {
				continue
			}
			v, ok := parse(r)
			if !ok {
				if strict {
					return nil, fmt.Errorf("%w: %q at line %d column %d", ErrInvalidCell, r, lineNo+1, col+1)
				}
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// Runes keeps every character as its own cell.
func Runes(r rune) (rune, bool) {
	return r, true
}

// Digits maps '0'..'9' to their integer value.
func Digits(r rune) (int, bool) {
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// Rows returns the number of rows.
func (g *Grid[T]) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid[T]) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid[T]) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell at p.
func (g *Grid[T]) At(p Point) (T, bool) {
	if !g.InBounds(p) {
		var zero T
		return zero, false
	}
	return g.cells[p.Row][p.Col], true
}

// Set stores v at p. It reports false when p is out of bounds.
func (g *Grid[T]) Set(p Point, v T) bool {
	if !g.InBounds(p) {
		return false
	}
	g.cells[p.Row][p.Col] = v
	return true
}

// All yields every cell in row-major order.
func (g *Grid[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		for r, row := range g.cells {
			for c, v := range row {
				if !yield(Point{Row: r, Col: c}, v) {
					return
				}
			}
		}
	}
}

// Find returns the first cell, in row-major order, matching pred.
func (g *Grid[T]) Find(pred func(T) bool) (Point, bool) {
	for p, v := range g.All() {
		if pred(v) {
			return p, true
		}
	}
	return Point{}, false
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([][]T, len(g.cells))
	for r, row := range g.cells {
		cells[r] = append([]T(nil), row...)
	}
	return &Grid[T]{cells: cells, rows: g.rows, cols: g.cols}
}

// Map converts every cell of g with fn.
func Map[T, U any](g *Grid[T], fn func(T) U) *Grid[U] {
	cells := make([][]U, len(g.cells))
	for r, row := range g.cells {
		out := make([]U, len(row))
		for c, v := range row {
			out[c] = fn(v)
		}
		cells[r] = out
	}
	return &Grid[U]{cells: cells, rows: g.rows, cols: g.cols}
}

// Render turns each row into a line of text using glyph.
func (g *Grid[T]) Render(glyph func(T) rune) []string {
	lines := make([]string, 0, g.rows)
	var b strings.Builder
	for _, row := range g.cells {
		b.Reset()
		for _, v := range row {
			b.WriteRune(glyph(v))
		}
		lines = append(lines, b.String())
	}
	return lines
}
