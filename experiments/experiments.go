package experiments

import (
	"filler/engine"
	"filler/experiments/metrics"
	"filler/game"
	"filler/meta"
	"filler/player"
	"filler/searcher"
	"filler/searcher/mcts"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = 30 // Per match up

// Experiment plays every match up Games times on random boards and records the results.
type Experiment struct {
	Name      string
	Configs   []metrics.AgentConfig
	MatchUps  [][2]metrics.AgentConfig // Human seat, AI seat
	Games     int
	BoardSize int
}

var random = metrics.AgentConfig{ID: 0, Kind: "random", Seed: 1}

// DepthExperiment pits search agents of increasing depth against a random baseline.
func DepthExperiment() Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Depth: 1, Goroutines: 1, Pruning: true},
		{ID: 2, Kind: "search", Depth: 2, Goroutines: 1, Pruning: true},
		{ID: 3, Kind: "search", Depth: 3, Goroutines: 1, Pruning: true},
		{ID: 4, Kind: "search", Depth: 4, Goroutines: 1, Pruning: true},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{random, config})
	}
	return Experiment{
		Name:      "depth",
		Configs:   append(configs, random),
		MatchUps:  matchUps,
		Games:     NumGames,
		BoardSize: meta.BOARD_SIZE,
	}
}

// PruningExperiment replays the same games with and without alpha-beta pruning. Both
// agents choose identical moves, only the search cost differs.
func PruningExperiment() Experiment {
	greedy := metrics.AgentConfig{ID: 0, Kind: "greedy"}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Depth: meta.SEARCH_DEPTH, Goroutines: 1, Pruning: false},
		{ID: 2, Kind: "search", Depth: meta.SEARCH_DEPTH, Goroutines: 1, Pruning: true},
	}
	return Experiment{
		Name:    "pruning",
		Configs: append(configs, greedy),
		MatchUps: [][2]metrics.AgentConfig{
			{greedy, configs[0]},
			{greedy, configs[1]},
		},
		Games:     NumGames,
		BoardSize: meta.BOARD_SIZE,
	}
}

// MCTSExperiment pits Monte Carlo tree search against minimax, in both seats.
func MCTSExperiment() Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "search", Depth: 3, Goroutines: 1, Pruning: true},
		{ID: 2, Kind: "mcts", Episodes: 500, Goroutines: 4, Seed: 1},
	}
	return Experiment{
		Name:    "mcts",
		Configs: configs,
		MatchUps: [][2]metrics.AgentConfig{
			{configs[0], configs[1]},
			{configs[1], configs[0]},
		},
		Games:     NumGames,
		BoardSize: meta.BOARD_SIZE,
	}
}

// ByName returns the experiment registered under name.
func ByName(name string) (Experiment, error) {
	experiments := map[string]func() Experiment{
		"depth":      DepthExperiment,
		"mcts":       MCTSExperiment,
		"pruning":    PruningExperiment,
		"throughput": ThroughputExperiment,
	}
	build, ok := experiments[name]
	if !ok {
		names := make([]string, 0, len(experiments))
		for n := range experiments {
			names = append(names, n)
		}
		sort.Strings(names)
		return Experiment{}, fmt.Errorf("unknown experiment %q, expected one of %v", name, names)
	}
	return build(), nil
}

// Run plays the experiment and writes its CSV files below root. It returns the
// directory holding them.
func (x Experiment) Run(root string) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		config1, config2 := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), config1, config2)

		wins := 0
		var matchupMoves []metrics.MoveMetric
		for i := 0; i < x.Games; i++ {
			// Every matchup sees the same boards.
			seed := uint64(i + 1)
			winner, gameMetric, moveMetrics := x.runGame(config1, config2, seed)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			matchupMoves = append(matchupMoves, moveMetrics...)
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			if winner == game.AIWins {
				wins++
			}
			log.Debug().Msgf("completed matchup %d game %d with winner: %s", mi+1, i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d, agent%d won %d of %d, %.0f nodes/s", mi+1, len(x.MatchUps), config2.ID, wins, x.Games, throughput(matchupMoves))
	}

	log.Info().Msgf("completed %s experiment", x.Name)
	return write(root, x.Name, x.Configs, gameRecords, moveRecords)
}

func (x Experiment) runGame(config1, config2 metrics.AgentConfig, seed uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	state := game.RandomLayout(rand.New(rand.NewSource(seed)), x.BoardSize, x.BoardSize, game.Palette)
	e := engine.LocalEngine(state, newAgent(config1, seed), newAgent(config2, seed))
	return e.Run()
}

func newAgent(config metrics.AgentConfig, seed uint64) engine.Agent {
	switch config.Kind {
	case "random":
		return player.NewRandomAgent(config.Seed + seed)
	case "greedy":
		return player.NewGreedyAgent()
	case "mcts":
		return player.NewSearchAgent(mcts.NewMCTS(config.Goroutines,
			mcts.WithEpisodes(config.Episodes),
			mcts.WithSeed(config.Seed+seed),
			mcts.WithMetrics(),
		))
	}

	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}
	return player.NewSearchAgent(searcher.NewMinimax(options...))
}

func write(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
