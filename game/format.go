package game

import (
	"fmt"
	"strings"
)

// String renders the player to move, the turn count and the board.
func (gs *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Next player: %s\n", gs.NextPlayer)
	fmt.Fprintf(&b, "Turns played: %d\n", gs.TurnsPlayed)
	b.WriteString(gs.BoardString())
	return b.String()
}

// BoardString renders the grid with row letters and column digits, e.g.
//
//	    0   1   2
//	A: aA9 aV9  .
func (gs *GameState) BoardString() string {
	var b strings.Builder
	b.WriteString("\n   ")
	for col := 0; col < gs.Dim(); col++ {
		b.WriteString(center(Coord{Col: col}.ColString(), 3))
		b.WriteString(" ")
	}
	b.WriteString("\n")
	for row := 0; row < gs.Dim(); row++ {
		b.WriteString(Coord{Row: row}.RowString())
		b.WriteString(": ")
		for col := 0; col < gs.Dim(); col++ {
			unit := gs.Get(Coord{row, col})
			if unit == nil {
				b.WriteString(" .  ")
				continue
			}
			b.WriteString(center(unit.String(), 3))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
