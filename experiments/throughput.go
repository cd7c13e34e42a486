package experiments

import "wargame/experiments/metrics"

// Throughput runs self-play games with a growing number of root goroutines. Both sides share a
// config so that playing strength and game length stay comparable.
func Throughput() Experiment {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8} {
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 1,
			MaxDepth:   4,
			MinDepth:   4,
			AlphaBeta:  true,
			Duration:   TimeBudget,
			Heuristic:  "e0",
			Goroutines: goroutines,
		})
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{Name: "throughput", Configs: configs, MatchUps: matchUps}
}
