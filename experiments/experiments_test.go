package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"wargame/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestByName(t *testing.T) {
	require.Equal(t, []string{"depth", "heuristic", "pruning", "throughput"}, Names())
	for _, name := range Names() {
		exp, err := ByName(name)
		require.NoError(t, err)
		require.Equal(t, name, exp.Name)
		require.NotEmpty(t, exp.MatchUps)
		for _, matchUp := range exp.MatchUps {
			require.Contains(t, exp.Configs, matchUp[0], "Every matchup agent should be stored")
			require.Contains(t, exp.Configs, matchUp[1], "Every matchup agent should be stored")
		}
	}

	_, err := ByName("cutoff")
	require.Error(t, err)
}

func TestRunner(t *testing.T) {
	shallow := metrics.AgentConfig{ID: 1, MaxDepth: 1, MinDepth: 1, AlphaBeta: true, Heuristic: "e0", Goroutines: 1}
	plain := metrics.AgentConfig{ID: 2, MaxDepth: 2, MinDepth: 1, AlphaBeta: false, Heuristic: "e1", Goroutines: 2}
	exp := Experiment{
		Name:     "tiny",
		Configs:  []metrics.AgentConfig{shallow, plain},
		MatchUps: [][2]metrics.AgentConfig{{shallow, plain}, {plain, shallow}},
	}

	r := NewRunner(2, t.TempDir())
	r.MaxTurns = 4
	dir, err := r.Run(context.Background(), exp)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(r.OutDir, "tiny"), filepath.Dir(dir))

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3)

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 1+4, "Two games for each of the two matchups")
	require.Equal(t, []string{"1", "1", "2"}, games[1][:3])
	require.Equal(t, []string{"3", "2", "1"}, games[3][:3])

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1)
	require.Equal(t, "game", moves[0][0])
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(1, t.TempDir()).Run(ctx, Pruning())
	require.ErrorIs(t, err, context.Canceled)
}
