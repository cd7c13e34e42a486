package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wargame/game"

	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	opts := game.DefaultOptions()
	require.Equal(t, "gameTrace-true-5-100.txt", FileName(opts))

	opts.AlphaBeta = false
	opts.MaxTime = 1500 * time.Millisecond
	opts.MaxTurns = 20
	require.Equal(t, "gameTrace-false-1.5-20.txt", FileName(opts))
}

func TestWriter(t *testing.T) {
	t.Run("manual game", func(t *testing.T) {
		dir := t.TempDir()
		opts := game.DefaultOptions()
		w, err := Create(dir, opts)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "gameTrace-true-5-100.txt"), w.Path())

		state := game.NewGameState(opts)
		require.NoError(t, w.GameStart(state))
		require.NoError(t, w.TurnStart(1, 100, game.Attacker))
		ok, outcome := state.PerformMove(game.CoordPair{Src: game.Coord{Row: 2, Col: 0}, Dst: game.Coord{Row: 3, Col: 0}})
		require.True(t, ok)
		state.NextTurn()
		require.NoError(t, w.Move("Player", game.Attacker, outcome))
		require.NoError(t, w.Board(state))
		require.NoError(t, w.Winner(game.Defender, 1))
		require.NoError(t, w.Close())

		raw, err := os.ReadFile(w.Path())
		require.NoError(t, err)
		content := string(raw)

		require.True(t, strings.HasPrefix(content, "----------------\nGAME PARAMETERS: \nSession: "+w.Session().String()+"\n"))
		require.Contains(t, content, "Turn timeout: 5 seconds\nMax turns: 100\nPlay mode: player 1 = H & player 2 = H\n----------------\n")
		require.NotContains(t, content, "Alpha-beta", "Manual games have no search parameters")
		require.Contains(t, content, "\nGAME START\n\nNext player: Attacker\nTurns played: 0\n")
		require.Contains(t, content, "Turn # 1/100\nPlayer: Attacker\n\n")
		require.Contains(t, content, "Player Attacker: moved from C0 to D0\n")
		require.Contains(t, content, "D: aP9  .   .  dP9 dT9 \n")
		require.True(t, strings.HasSuffix(content, "----------------------\nDefender won in 1 turns!\n"))
	})

	t.Run("computer game with forfeit", func(t *testing.T) {
		opts := game.DefaultOptions()
		opts.GameType = game.CompVsComp
		opts.Heuristic = "e2"
		w, err := Create(t.TempDir(), opts)
		require.NoError(t, err)
		require.NoError(t, w.Forfeit())
		require.NoError(t, w.Close())

		raw, err := os.ReadFile(w.Path())
		require.NoError(t, err)
		require.Contains(t, string(raw), "Play mode: player 1 = AI & player 2 = AI\nAlpha-beta: on\nHeuristic: e2\n")
		require.True(t, strings.HasSuffix(string(raw), "Computer doesn't know what to do!!!\nGame over\n"))
	})
}
