package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTraversalVisitsEveryCellOnce(t *testing.T) {
	g, err := Parse("abc\ndef\nghi\njkl\n", Runes)
	require.NoError(t, err)
	require.Equal(t, 4, g.Rows())
	require.Equal(t, 3, g.Cols())

	seen := make(map[Point]rune)
	for p, v := range g.All() {
		_, dup := seen[p]
		require.False(t, dup, "duplicate point %v", p)
		require.True(t, p.Row >= 0 && p.Row < 4 && p.Col >= 0 && p.Col < 3, "point %v out of range", p)
		seen[p] = v
	}
	require.Len(t, seen, 12)
	require.Equal(t, 'a', seen[Point{0, 0}])
	require.Equal(t, 'l', seen[Point{3, 2}])
}

func TestInBoundsCornersAndEdges(t *testing.T) {
	g := New(3, 5, '.')

	for _, p := range []Point{{0, 0}, {0, 4}, {2, 0}, {2, 4}} {
		require.True(t, g.InBounds(p), "corner %v", p)
	}
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 5}, {3, 5}, {-1, -1}} {
		require.False(t, g.InBounds(p), "outside %v", p)
	}
}

func TestParseDropsWhitespaceAndRejectedCharacters(t *testing.T) {
	g, err := Parse("1 2x3\n4 5y6\r\n", Digits)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	require.Equal(t, 3, g.Cols())

	v, ok := g.At(Point{1, 2})
	require.True(t, ok)
	require.Equal(t, 6, v)
}

func TestParseRejectsRaggedResult(t *testing.T) {
	_, err := Parse("123\n4x5\n", Digits)
	require.ErrorIs(t, err, ErrRagged)
}

func TestParseStrictRejectsUnknownCharacters(t *testing.T) {
	_, err := ParseStrict("12\n3x\n", Digits)
	require.ErrorIs(t, err, ErrInvalidCell)
	require.Contains(t, err.Error(), "line 2 column 2")

	g, err := ParseStrict("1 2\n3 4", Digits)
	require.NoError(t, err)
	require.Equal(t, 2, g.Cols())
}

func TestParseEmptyInput(t *testing.T) {
	g, err := Parse("", Runes)
	require.NoError(t, err)
	require.Equal(t, 0, g.Rows())
	require.Equal(t, 0, g.Cols())
	require.False(t, g.InBounds(Point{}))

	count := 0
	for range g.All() {
		count++
	}
	require.Zero(t, count)
}

func TestFromRowsValidatesRectangle(t *testing.T) {
	_, err := FromRows([][]int{{1, 2}, {3}})
	require.True(t, errors.Is(err, ErrRagged))

	g, err := FromRows([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
}

func TestSetAtAndClone(t *testing.T) {
	g := New(2, 2, 0)
	require.True(t, g.Set(Point{1, 1}, 7))
	require.False(t, g.Set(Point{2, 0}, 9))

	clone := g.Clone()
	require.True(t, clone.Set(Point{1, 1}, 8))

	v, _ := g.At(Point{1, 1})
	require.Equal(t, 7, v)
	_, ok := g.At(Point{-1, 0})
	require.False(t, ok)
}

func TestFindMapAndRender(t *testing.T) {
	g, err := Parse("..#\n#..", Runes)
	require.NoError(t, err)

	p, ok := g.Find(func(r rune) bool { return r == '#' })
	require.True(t, ok)
	require.Equal(t, Point{0, 2}, p)

	walls := Map(g, func(r rune) bool { return r == '#' })
	lines := walls.Render(func(b bool) rune {
		if b {
			return 'X'
		}
		return ' '
	})
	require.Equal(t, []string{"  X", "X  "}, lines)
}

func TestPointNeighbours(t *testing.T) {
	n := Point{1, 1}.Neighbours()
	require.Equal(t, [4]Point{{0, 1}, {1, 2}, {2, 1}, {1, 0}}, n)
}
