package experiments

import (
	"context"
	"fmt"
	"sort"
	"time"

	"wargame/engine"
	"wargame/experiments/metrics"
	"wargame/game"
	"wargame/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const TimeBudget = 500 * time.Millisecond

// Experiment is a set of agent configurations and the matchups played between them.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig // attacker, defender
}

var registry = map[string]func() Experiment{
	"pruning":    Pruning,
	"depth":      Depth,
	"heuristic":  Heuristic,
	"throughput": Throughput,
}

// Names lists the experiments known to ByName.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ByName(name string) (Experiment, error) {
	build, ok := registry[name]
	if !ok {
		return Experiment{}, fmt.Errorf("unknown experiment %q, want one of %v", name, Names())
	}
	return build(), nil
}

// Pruning plays alpha-beta against plain minimax at the same depth, on both sides.
func Pruning() Experiment {
	plain := metrics.AgentConfig{ID: 1, MaxDepth: 4, MinDepth: 2, AlphaBeta: false, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1}
	pruned := metrics.AgentConfig{ID: 2, MaxDepth: 4, MinDepth: 2, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1}
	return Experiment{
		Name:     "pruning",
		Configs:  []metrics.AgentConfig{plain, pruned},
		MatchUps: [][2]metrics.AgentConfig{{plain, pruned}, {pruned, plain}},
	}
}

// Depth pairs a baseline against deeper searchers, alternating sides.
func Depth() Experiment {
	baseline := metrics.AgentConfig{ID: 0, MaxDepth: 2, MinDepth: 1, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1}
	configs := []metrics.AgentConfig{
		{ID: 1, MaxDepth: 3, MinDepth: 2, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1},
		{ID: 2, MaxDepth: 4, MinDepth: 2, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1},
		{ID: 3, MaxDepth: 5, MinDepth: 3, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1},
	}
	return againstBaseline("depth", baseline, configs)
}

// Heuristic pairs the material heuristic against the other evaluation functions.
func Heuristic() Experiment {
	baseline := metrics.AgentConfig{ID: 0, MaxDepth: 4, MinDepth: 2, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e0", Goroutines: 1}
	configs := []metrics.AgentConfig{
		{ID: 1, MaxDepth: 4, MinDepth: 2, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e1", Goroutines: 1},
		{ID: 2, MaxDepth: 4, MinDepth: 2, AlphaBeta: true, Duration: TimeBudget, Heuristic: "e2", Goroutines: 1},
	}
	return againstBaseline("heuristic", baseline, configs)
}

func againstBaseline(name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig) Experiment {
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config}, [2]metrics.AgentConfig{config, baseline})
	}
	return Experiment{Name: name, Configs: append([]metrics.AgentConfig{baseline}, configs...), MatchUps: matchUps}
}

// Runner plays every matchup of an experiment a number of times and writes the results.
type Runner struct {
	Games    int    // per matchup
	OutDir   string // root of the result directories
	MaxTurns int
	Dim      int
}

func NewRunner(games int, outDir string) *Runner {
	return &Runner{Games: games, OutDir: outDir, MaxTurns: game.DefaultOptions().MaxTurns, Dim: game.DefaultOptions().Dim}
}

// Run returns the directory the result tables were written to.
func (r *Runner) Run(ctx context.Context, exp Experiment) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchUp := range exp.MatchUps {
		attacker, defender := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between attacker=%+v and defender=%+v...", mi+1, len(exp.MatchUps), attacker, defender)

		for i := 0; i < r.Games; i++ {
			count++
			result, err := r.runGame(ctx, uint64(count), attacker, defender)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Attacker:   attacker.ID,
				Defender:   defender.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return r.store(exp, gameRecords, moveRecords)
}

func (r *Runner) store(exp Experiment, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(r.OutDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame plays one computer game. The seed makes the move shuffling reproducible.
func (r *Runner) runGame(ctx context.Context, seed uint64, attacker, defender metrics.AgentConfig) (engine.Result, error) {
	opts := game.DefaultOptions()
	opts.GameType = game.CompVsComp
	opts.MaxTurns = r.MaxTurns
	if r.Dim > 0 {
		opts.Dim = r.Dim
	}

	agents := make(map[game.Player]engine.Agent, 2)
	for p, config := range map[game.Player]metrics.AgentConfig{game.Attacker: attacker, game.Defender: defender} {
		s, err := createMinimax(config, seed)
		if err != nil {
			return engine.Result{}, err
		}
		agents[p] = engine.NewComputerAgent(s)
	}
	return engine.LocalEngine(opts, agents).Run(ctx)
}

func createMinimax(config metrics.AgentConfig, seed uint64) (*searcher.Minimax, error) {
	evaluate, err := game.HeuristicByName(config.Heuristic)
	if err != nil {
		return nil, err
	}
	return searcher.NewMinimax(
		searcher.WithMaxDepth(config.MaxDepth),
		searcher.WithMinDepth(config.MinDepth),
		searcher.WithDuration(config.Duration),
		searcher.WithAlphaBeta(config.AlphaBeta),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithRandomize(seed),
		searcher.WithLogger(log.Logger.Level(zerolog.WarnLevel)),
	), nil
}
