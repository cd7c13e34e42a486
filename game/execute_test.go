package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerformMove(t *testing.T) {
	t.Run("move relocates the unit", func(t *testing.T) {
		gs := NewGameState(nil)
		ok, outcome := gs.PerformMove(CoordPair{Src: Coord{2, 0}, Dst: Coord{3, 0}})
		require.True(t, ok)
		require.Equal(t, "moved from C0 to D0", outcome)
		require.True(t, gs.IsEmpty(Coord{2, 0}))
		require.Equal(t, NewUnit(Attacker, Program), gs.Get(Coord{3, 0}))
	})

	t.Run("repair restores health", func(t *testing.T) {
		gs := newTestState(5, Defender, map[Coord]*Unit{
			{4, 4}: unitWithHealth(Defender, AI, 4),
			{3, 4}: NewUnit(Defender, Tech),
		})
		ok, outcome := gs.PerformMove(CoordPair{Src: Coord{3, 4}, Dst: Coord{4, 4}})
		require.True(t, ok)
		require.Equal(t, "repaired E4 from 4 to 7", outcome)
		require.Equal(t, 7, gs.Get(Coord{4, 4}).Health)
	})

	t.Run("attack damages both units", func(t *testing.T) {
		gs := newTestState(5, Attacker, map[Coord]*Unit{
			{1, 1}: NewUnit(Attacker, Virus),
			{2, 1}: NewUnit(Defender, Tech),
		})
		ok, outcome := gs.PerformMove(CoordPair{Src: Coord{1, 1}, Dst: Coord{2, 1}})
		require.True(t, ok)
		require.Equal(t, "combat damage: to source = 6, to target = 6", outcome)
		require.Equal(t, 3, gs.Get(Coord{1, 1}).Health)
		require.Equal(t, 3, gs.Get(Coord{2, 1}).Health)
	})

	t.Run("killing the commander decides the game", func(t *testing.T) {
		gs := newTestState(5, Attacker, map[Coord]*Unit{
			{0, 0}: NewUnit(Attacker, AI),
			{3, 3}: NewUnit(Attacker, Virus),
			{3, 4}: NewUnit(Defender, AI),
		})
		ok, _ := gs.PerformMove(CoordPair{Src: Coord{3, 3}, Dst: Coord{3, 4}})
		require.True(t, ok)
		require.True(t, gs.IsEmpty(Coord{3, 4}))
		require.Equal(t, 6, gs.Get(Coord{3, 3}).Health)
		require.False(t, gs.HasAI(Defender))

		winner, finished := gs.Winner()
		require.True(t, finished)
		require.Equal(t, Attacker, winner)
	})

	t.Run("units that kill each other are both removed", func(t *testing.T) {
		gs := newTestState(5, Attacker, map[Coord]*Unit{
			{2, 2}: unitWithHealth(Attacker, Program, 2),
			{2, 3}: unitWithHealth(Defender, Program, 3),
		})
		ok, outcome := gs.PerformMove(CoordPair{Src: Coord{2, 2}, Dst: Coord{2, 3}})
		require.True(t, ok)
		require.Equal(t, "combat damage: to source = 2, to target = 3", outcome)
		require.True(t, gs.IsEmpty(Coord{2, 2}))
		require.True(t, gs.IsEmpty(Coord{2, 3}))
	})

	t.Run("self-destruct damages the surrounding square", func(t *testing.T) {
		gs := newTestState(5, Attacker, map[Coord]*Unit{
			{2, 2}: NewUnit(Attacker, Program),
			{1, 1}: NewUnit(Attacker, Firewall),
			{2, 3}: NewUnit(Defender, AI),
			{3, 3}: unitWithHealth(Defender, Tech, 1),
			{4, 4}: NewUnit(Defender, Program),
		})
		ok, outcome := gs.PerformMove(CoordPair{Src: Coord{2, 2}, Dst: Coord{2, 2}})
		require.True(t, ok)
		require.Equal(t, "self-destructed for 5 total damage", outcome)
		require.True(t, gs.IsEmpty(Coord{2, 2}), "Source should be removed")
		require.True(t, gs.IsEmpty(Coord{3, 3}), "Units brought to 0 should be removed")
		require.Equal(t, 7, gs.Get(Coord{1, 1}).Health, "Friendly units are damaged too")
		require.Equal(t, 7, gs.Get(Coord{2, 3}).Health)
		require.Equal(t, 9, gs.Get(Coord{4, 4}).Health, "Units out of range are untouched")
	})

	t.Run("self-destruct in a corner ignores cells off the board", func(t *testing.T) {
		gs := NewGameState(nil)
		ok, outcome := gs.PerformMove(CoordPair{Src: Coord{0, 0}, Dst: Coord{0, 0}})
		require.True(t, ok)
		require.Equal(t, "self-destructed for 6 total damage", outcome)
		require.False(t, gs.HasAI(Attacker))
	})

	t.Run("illegal moves leave the state untouched", func(t *testing.T) {
		gs := NewGameState(nil)
		before := gs.String()
		ok, reason := gs.PerformMove(CoordPair{Src: Coord{0, 0}, Dst: Coord{2, 2}})
		require.False(t, ok)
		require.Equal(t, "non-adjacent", reason)
		require.Equal(t, before, gs.String())
	})

	t.Run("health stays within bounds over a long game", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxTurns = 200
		gs := NewGameState(opts)
		for turn := 0; !gs.IsFinished(); turn++ {
			moves := gs.MoveCandidates()
			require.NotEmpty(t, moves)
			move := moves[(turn*7)%len(moves)]
			ok, reason := gs.PerformMove(move)
			require.True(t, ok, reason)
			gs.NextTurn()

			aiOnBoard := map[Player]bool{}
			for _, p := range Players() {
				for _, u := range gs.PlayerUnits(p) {
					require.GreaterOrEqual(t, u.Unit.Health, 1)
					require.LessOrEqual(t, u.Unit.Health, 9)
					if u.Unit.Kind == AI {
						aiOnBoard[p] = true
					}
				}
				require.Equal(t, aiOnBoard[p], gs.HasAI(p), "Commander flag should match the board")
			}
		}
	})
}

func TestExecuteStaleAction(t *testing.T) {
	withFirewall := func(c Coord) *GameState {
		gs := NewEmptyGameState(nil)
		gs.Set(c, NewUnit(Attacker, Firewall))
		return gs
	}
	for name, tc := range map[string]struct {
		state *GameState
		pair  CoordPair
		kind  ActionKind
	}{
		"move onto a unit":      {NewGameState(nil), CoordPair{Src: Coord{0, 0}, Dst: Coord{0, 1}}, MoveAction},
		"repair an empty cell":  {withFirewall(Coord{1, 1}), CoordPair{Src: Coord{1, 1}, Dst: Coord{0, 1}}, RepairAction},
		"attack an empty cell":  {withFirewall(Coord{1, 1}), CoordPair{Src: Coord{1, 1}, Dst: Coord{2, 1}}, AttackAction},
		"self-destruct nothing": {NewEmptyGameState(nil), CoordPair{Src: Coord{2, 2}, Dst: Coord{2, 2}}, SelfDestructAction},
		"source off the board":  {NewGameState(nil), CoordPair{Src: Coord{-1, 0}, Dst: Coord{0, 0}}, MoveAction},
	} {
		t.Run(name, func(t *testing.T) {
			before := tc.state.String()
			ok, reason := tc.state.execute(tc.pair, Action{Kind: tc.kind, Amount: 1, Damage: 1, Backfire: 1})
			require.False(t, ok)
			require.Equal(t, reasonStale, reason)
			require.Equal(t, before, tc.state.String(), "Rejected actions leave the board alone")
		})
	}
}
