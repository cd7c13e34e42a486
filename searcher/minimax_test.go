package searcher

import (
	"context"
	"testing"
	"time"

	"wargame/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(options ...Option) *Minimax {
	return NewMinimax(append([]Option{WithLogger(zerolog.Nop())}, options...)...)
}

// midgame plays a few fixed opening moves so both sides have options.
func midgame(t *testing.T) *game.GameState {
	gs := game.NewGameState(nil)
	for _, s := range []string{"C0 D0", "D3 C3", "A2 B2", "C4 B4", "B1 C1", "E2 E1"} {
		move, err := game.ParseCoordPair(s)
		require.NoError(t, err)
		ok, reason := gs.PerformMove(move)
		require.True(t, ok, "%s: %s", s, reason)
		gs.NextTurn()
	}
	return gs
}

func TestSearchPruning(t *testing.T) {
	for name, state := range map[string]*game.GameState{
		"opening": game.NewGameState(nil),
		"midgame": midgame(t),
	} {
		t.Run(name, func(t *testing.T) {
			plain := newTestSearcher(WithMaxDepth(3), WithMinDepth(3), WithAlphaBeta(false))
			pruned := newTestSearcher(WithMaxDepth(3), WithMinDepth(3), WithAlphaBeta(true))

			want, err := plain.Search(context.Background(), state.Clone())
			require.NoError(t, err)
			got, err := pruned.Search(context.Background(), state.Clone())
			require.NoError(t, err)

			require.Equal(t, want.Score, got.Score, "Pruning should not change the minimax value")
			require.LessOrEqual(t, got.Metric.Evaluations, want.Metric.Evaluations)
			require.True(t, state.IsValidMove(got.Move))
		})
	}
}

func TestSearchParallel(t *testing.T) {
	state := midgame(t)
	sequential := newTestSearcher(WithMaxDepth(3), WithMinDepth(3))
	parallel := newTestSearcher(WithMaxDepth(3), WithMinDepth(3), WithGoroutines(4))

	want, err := sequential.Search(context.Background(), state.Clone())
	require.NoError(t, err)
	got, err := parallel.Search(context.Background(), state.Clone())
	require.NoError(t, err)

	require.Equal(t, want.Score, got.Score)
	require.True(t, state.IsValidMove(got.Move))
}

func TestSearchFindsWin(t *testing.T) {
	t.Run("attacker captures the commander", func(t *testing.T) {
		gs := game.NewEmptyGameState(nil)
		gs.Set(game.Coord{Row: 0, Col: 0}, game.NewUnit(game.Attacker, game.AI))
		gs.Set(game.Coord{Row: 3, Col: 3}, game.NewUnit(game.Attacker, game.Virus))
		gs.Set(game.Coord{Row: 3, Col: 4}, game.NewUnit(game.Defender, game.AI))
		gs.Set(game.Coord{Row: 4, Col: 0}, game.NewUnit(game.Defender, game.Tech))

		result, err := newTestSearcher(WithMaxDepth(2), WithMinDepth(1)).Search(context.Background(), gs)
		require.NoError(t, err)
		require.Equal(t, game.CoordPair{Src: game.Coord{Row: 3, Col: 3}, Dst: game.Coord{Row: 3, Col: 4}}, result.Move)
		require.Equal(t, game.MaxHeuristicScore, result.Score)
	})

	t.Run("defender scores from its own side", func(t *testing.T) {
		gs := game.NewEmptyGameState(nil)
		gs.NextPlayer = game.Defender
		gs.Set(game.Coord{Row: 0, Col: 0}, &game.Unit{Player: game.Attacker, Kind: game.AI, Health: 2})
		gs.Set(game.Coord{Row: 0, Col: 1}, game.NewUnit(game.Defender, game.Tech))
		gs.Set(game.Coord{Row: 4, Col: 4}, game.NewUnit(game.Defender, game.AI))

		result, err := newTestSearcher(WithMaxDepth(2), WithMinDepth(1)).Search(context.Background(), gs)
		require.NoError(t, err)
		require.Equal(t, game.MaxHeuristicScore, result.Score)
		require.Equal(t, game.Coord{Row: 0, Col: 1}, result.Move.Src)
	})
}

func TestSearchStateAndStats(t *testing.T) {
	state := game.NewGameState(nil)
	before := state.String()

	result, err := newTestSearcher(WithMaxDepth(2), WithMinDepth(2)).Search(context.Background(), state)
	require.NoError(t, err)

	require.Equal(t, before, state.String(), "Search should not modify the live state")
	require.Equal(t, 2, result.Depth)
	require.Equal(t, 1, result.Metric.EvaluationsPerDepth[0], "Root is evaluated once")
	require.Greater(t, result.Metric.EvaluationsPerDepth[2], result.Metric.EvaluationsPerDepth[1])
	require.Equal(t, result.Metric.Evaluations, state.Stats.TotalEvaluations(), "Game stats should receive the search totals")
	require.Equal(t, result.Metric.EvaluationsPerDepth, state.Stats.EvaluationsPerDepth())
}

func TestSelectDepth(t *testing.T) {
	m := newTestSearcher(WithMaxDepth(4), WithMinDepth(2))

	t.Run("level position uses the midpoint", func(t *testing.T) {
		require.Equal(t, 3, m.SelectDepth(game.NewGameState(nil)))
	})

	t.Run("ahead uses the full depth and behind the shallow one", func(t *testing.T) {
		gs := game.NewGameState(nil)
		gs.Set(game.Coord{Row: 3, Col: 3}, nil)
		require.Equal(t, 4, m.SelectDepth(gs))

		gs.NextTurn()
		require.Equal(t, 2, m.SelectDepth(gs))
	})
}

func TestSearchLimits(t *testing.T) {
	t.Run("time budget returns the best move so far", func(t *testing.T) {
		state := game.NewGameState(nil)
		m := newTestSearcher(WithMaxDepth(4), WithMinDepth(4), WithDuration(time.Nanosecond))

		result, err := m.Search(context.Background(), state)
		require.NoError(t, err)
		require.True(t, result.Metric.TimedOut)
		require.True(t, state.IsValidMove(result.Move))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		state := game.NewGameState(nil)

		result, err := newTestSearcher().Search(ctx, state)
		require.NoError(t, err)
		require.True(t, state.IsValidMove(result.Move))
	})

	t.Run("randomized searches still return legal moves", func(t *testing.T) {
		state := midgame(t)
		result, err := newTestSearcher(WithMaxDepth(2), WithMinDepth(2), WithRandomize(7)).Search(context.Background(), state)
		require.NoError(t, err)
		require.True(t, state.IsValidMove(result.Move))
	})
}

func TestSearchErrors(t *testing.T) {
	t.Run("game over", func(t *testing.T) {
		state := game.NewGameState(nil)
		state.TurnsPlayed = state.Options.MaxTurns
		_, err := newTestSearcher().Search(context.Background(), state)
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("no move", func(t *testing.T) {
		state := game.NewEmptyGameState(nil)
		state.Set(game.Coord{Row: 4, Col: 4}, game.NewUnit(game.Defender, game.AI))
		_, err := newTestSearcher().Search(context.Background(), state)
		require.ErrorIs(t, err, ErrNoMove)
	})

	t.Run("unknown heuristic", func(t *testing.T) {
		opts := game.DefaultOptions()
		opts.Heuristic = "e7"
		_, err := FromOptions(opts)
		require.ErrorIs(t, err, game.ErrUnknownHeuristic)
	})
}
