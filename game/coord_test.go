package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCoord(t *testing.T) {
	t.Run("letter row and hex column", func(t *testing.T) {
		c, err := ParseCoord("D2")
		require.NoError(t, err)
		require.Equal(t, Coord{Row: 3, Col: 2}, c)
		require.Equal(t, "D2", c.String())
	})

	t.Run("separators and case are ignored", func(t *testing.T) {
		c, err := ParseCoord(" d-2 ")
		require.NoError(t, err)
		require.Equal(t, Coord{Row: 3, Col: 2}, c)
	})

	t.Run("unknown characters are rejected", func(t *testing.T) {
		_, err := ParseCoord("?1")
		require.ErrorIs(t, err, ErrInvalidCoord)
		_, err = ParseCoord("A")
		require.ErrorIs(t, err, ErrInvalidCoord)
	})

	t.Run("pairs", func(t *testing.T) {
		p, err := ParseCoordPair("A3 B3")
		require.NoError(t, err)
		require.Equal(t, CoordPair{Src: Coord{0, 3}, Dst: Coord{1, 3}}, p)
		require.Equal(t, "A3 B3", p.String())

		p, err = ParseCoordPair("e4,e3")
		require.NoError(t, err)
		require.Equal(t, CoordPair{Src: Coord{4, 4}, Dst: Coord{4, 3}}, p)

		_, err = ParseCoordPair("A3 B")
		require.ErrorIs(t, err, ErrInvalidCoord)
	})
}

func TestCoordNeighbourhoods(t *testing.T) {
	t.Run("adjacent is up, left, down, right", func(t *testing.T) {
		require.Equal(t, []Coord{{1, 2}, {2, 1}, {3, 2}, {2, 3}}, Coord{2, 2}.Adjacent())
	})

	t.Run("range includes the centre and the diagonals", func(t *testing.T) {
		r := Coord{2, 2}.Range(1)
		require.Len(t, r, 9)
		require.Contains(t, r, Coord{2, 2})
		require.Contains(t, r, Coord{1, 1})
		require.Contains(t, r, Coord{3, 3})
		require.NotContains(t, r, Coord{0, 2})
	})

	t.Run("rectangle spans the whole board", func(t *testing.T) {
		cells := PairFromDim(3).Rectangle()
		require.Len(t, cells, 9)
		require.Equal(t, Coord{0, 0}, cells[0])
		require.Equal(t, Coord{2, 2}, cells[8])
	})
}
