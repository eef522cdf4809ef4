package mcts

import (
	"filler/experiments/metrics"
	"filler/game"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const DefaultEpisodes = 1000

type Option func(m *MCTS)

// MCTS is a tree-parallel Monte Carlo tree search with virtual loss. Rollouts play
// random moves, to the end of the game or to a cut-off where the evaluator scores them.
type MCTS struct {
	goroutines   int
	duration     time.Duration
	episodes     int
	cutoff       int
	evaluate     game.Evaluate
	seed         uint64
	newCollector func() metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops rollouts after depth moves.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.newCollector = metrics.NewCollector
	}
}

// NewMCTS runs DefaultEpisodes per search unless episodes or a duration are given;
// episodes win when both are.
func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:   max(goroutines, 1),
		evaluate:     game.EvaluateDefault,
		seed:         1,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		m.episodes = DefaultEpisodes
	}
	return m
}

// FindMoveFor grows a fresh tree with player to move and returns the most visited move.
// The metric's score is that move's estimated chance of winning.
func (m *MCTS) FindMoveFor(state *game.State, player game.Player) (game.Color, metrics.SearchMetric) {
	start := state.Copy()
	start.Turn = player
	root := newDecision(nil, game.NoMove, player.Opponent(), start)

	collector := m.newCollector()
	collector.Start(m.cutoff, m.goroutines, false)
	if m.episodes > 0 {
		m.iterate(root, start, collector)
	} else {
		m.countdown(root, start, collector)
	}

	best := root.bestChild()
	if best == nil {
		if moves := state.MovesFor(player); len(moves) > 0 {
			log.Warn().Msgf("search returned no move for %s with %d legal moves, playing %q", player, len(moves), moves[0])
			return moves[0], collector.Complete(0)
		}
		return game.NoMove, collector.Complete(0)
	}

	best.Lock()
	chance := best.rewards / best.visits
	best.Unlock()
	return best.move, collector.Complete(chance)
}

func (m *MCTS) iterate(root *decision, state *game.State, collector metrics.Collector) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for range task {
				m.simulate(root, state, rng, collector)
			}
		}(rand.New(rand.NewSource(m.seed + uint64(i))))
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *decision, state *game.State, collector metrics.Collector) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, state, rng, collector)
				}
			}
		}(rand.New(rand.NewSource(m.seed + uint64(i))))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(root *decision, state *game.State, rng *rand.Rand, collector metrics.Collector) {
	state = state.Copy()
	node := selectThenExpand(root, state, collector)
	aiChance := m.rollout(state, rng, collector)
	backup(node, aiChance)
}

func selectThenExpand(root *decision, state *game.State, collector metrics.Collector) *decision {
	node := root
	for {
		child, expanded := node.selectOrExpand(state)
		if expanded {
			collector.AddNode()
			return child
		}
		if child == node { // Terminal node
			return child
		}
		node = child
	}
}

// rollout plays random moves on state and returns the AI's chance of winning.
func (m *MCTS) rollout(state *game.State, rng *rand.Rand, collector metrics.Collector) float64 {
	defer collector.AddLeaf()

	for depth := 0; !state.IsOver(); depth++ {
		if m.cutoff > 0 && depth >= m.cutoff {
			return winChance(m.evaluate(state))
		}
		moves := state.LegalMoves()
		_ = state.Apply(moves[rng.Intn(len(moves))], state.Turn) // Random rollout policy
	}

	switch state.Winner() {
	case game.AIWins:
		return Win
	case game.PlayerWins:
		return Loss
	default:
		return Draw
	}
}

func backup(node *decision, aiChance float64) {
	for node != nil {
		node = node.backup(aiChance)
	}
}
