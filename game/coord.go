package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	rowLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	colLabels = "0123456789abcdef"
	// characters ignored when parsing typed coordinates
	coordSeparators = " ,.:;-_"
)

var ErrInvalidCoord = errors.New("invalid coordinates")

// Coord addresses a board cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) RowString() string {
	if c.Row >= 0 && c.Row < len(rowLabels) {
		return rowLabels[c.Row : c.Row+1]
	}
	return "?"
}

func (c Coord) ColString() string {
	if c.Col >= 0 && c.Col < len(colLabels) {
		return colLabels[c.Col : c.Col+1]
	}
	return "?"
}

func (c Coord) String() string {
	return c.RowString() + c.ColString()
}

// Adjacent returns the orthogonal neighbours: up, left, down, right.
func (c Coord) Adjacent() []Coord {
	return []Coord{
		{c.Row - 1, c.Col},
		{c.Row, c.Col - 1},
		{c.Row + 1, c.Col},
		{c.Row, c.Col + 1},
	}
}

// Range returns every coordinate within Chebyshev distance dist, including c itself.
func (c Coord) Range(dist int) []Coord {
	coords := make([]Coord, 0, (2*dist+1)*(2*dist+1))
	for row := c.Row - dist; row <= c.Row+dist; row++ {
		for col := c.Col - dist; col <= c.Col+dist; col++ {
			coords = append(coords, Coord{row, col})
		}
	}
	return coords
}

// ParseCoord reads a coordinate such as "D2" or "d-2".
func ParseCoord(s string) (Coord, error) {
	s = stripSeparators(s)
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	return parseCell(s)
}

// CoordPair is a move from Src to Dst, or a rectangle spanned by the two corners.
type CoordPair struct {
	Src Coord `json:"from"`
	Dst Coord `json:"to"`
}

func (p CoordPair) String() string {
	return p.Src.String() + " " + p.Dst.String()
}

// Rectangle returns every coordinate of the area from Src to Dst, row by row.
func (p CoordPair) Rectangle() []Coord {
	var coords []Coord
	for row := p.Src.Row; row <= p.Dst.Row; row++ {
		for col := p.Src.Col; col <= p.Dst.Col; col++ {
			coords = append(coords, Coord{row, col})
		}
	}
	return coords
}

// PairFromDim spans a dim-sized board.
func PairFromDim(dim int) CoordPair {
	return CoordPair{Src: Coord{0, 0}, Dst: Coord{dim - 1, dim - 1}}
}

// ParseCoordPair reads a move such as "A3 B3".
func ParseCoordPair(s string) (CoordPair, error) {
	s = stripSeparators(s)
	if len(s) != 4 {
		return CoordPair{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	src, err := parseCell(s[0:2])
	if err != nil {
		return CoordPair{}, err
	}
	dst, err := parseCell(s[2:4])
	if err != nil {
		return CoordPair{}, err
	}
	return CoordPair{Src: src, Dst: dst}, nil
}

func parseCell(s string) (Coord, error) {
	row := strings.IndexByte(rowLabels, strings.ToUpper(s[0:1])[0])
	col := strings.IndexByte(colLabels, strings.ToLower(s[1:2])[0])
	if row < 0 || col < 0 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	return Coord{Row: row, Col: col}, nil
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(coordSeparators, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
