package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardString(t *testing.T) {
	gs := newTestState(3, Attacker, map[Coord]*Unit{
		{0, 0}: NewUnit(Attacker, AI),
		{2, 1}: unitWithHealth(Defender, Tech, 5),
	})

	board := "\n" +
		"    0   1   2  \n" +
		"A: aA9  .   .  \n" +
		"B:  .   .   .  \n" +
		"C:  .  dT5  .  \n"
	require.Equal(t, board, gs.BoardString())
	require.Equal(t, "Next player: Attacker\nTurns played: 0\n"+board, gs.String())
}
