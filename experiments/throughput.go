package experiments

import (
	"filler/experiments/metrics"
	"filler/meta"
	"time"
)

// ThroughputExperiment measures how the parallel root scales. Both seats use the same
// config so that games have similar length.
func ThroughputExperiment() Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Depth: 5, Goroutines: 1, Pruning: true},
		{ID: 2, Kind: "search", Depth: 5, Goroutines: 2, Pruning: true},
		{ID: 3, Kind: "search", Depth: 5, Goroutines: 4, Pruning: true},
		{ID: 4, Kind: "search", Depth: 5, Goroutines: 8, Pruning: true},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{
		Name:      "throughput",
		Configs:   configs,
		MatchUps:  matchUps,
		Games:     5,
		BoardSize: meta.BOARD_SIZE,
	}
}

// throughput returns the nodes searched per second over the given moves, zero when no
// time was measured.
func throughput(moves []metrics.MoveMetric) float64 {
	var nodes int
	var elapsed time.Duration
	for _, m := range moves {
		nodes += m.Nodes + m.Leaves
		elapsed += m.Duration
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(nodes) / elapsed.Seconds()
}
