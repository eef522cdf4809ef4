package searcher

import (
	"filler/experiments/metrics"
	"filler/game"
	"filler/meta"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is a depth-limited minimax search with alpha-beta pruning. It holds only
// configuration, so one value can serve concurrent searches.
type Minimax struct {
	depth        int
	goroutines   int
	pruning      bool
	evaluate     game.Evaluate
	newCollector func() metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines scores the root moves on a pool of goroutines. Each root move is then
// searched with a full window; the chosen move and score do not change.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithoutPruning explores the full tree. Only useful as a reference for measurements.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.newCollector = metrics.NewCollector
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:        meta.SEARCH_DEPTH,
		goroutines:   meta.SEARCH_GOROUTINES,
		pruning:      true,
		evaluate:     game.EvaluateDefault,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Search scores state to the given depth. The maximizing layer moves for the AI and
// the minimizing layer for the human, whatever state.Turn holds. It returns the best
// score and the move reaching it, or game.NoMove at a leaf.
func (m *Minimax) Search(state *game.State, depth int, maximizing bool, alpha, beta float64) (float64, game.Color) {
	r := run{Minimax: m, collector: metrics.NewDummyCollector()}
	return r.search(state, depth, maximizing, alpha, beta)
}

// FindNextMove picks the AI's move with the configured depth.
func (m *Minimax) FindNextMove(state *game.State) (game.Color, metrics.SearchMetric) {
	return m.FindMoveFor(state, game.AI)
}

// FindMoveFor picks a move for player: the AI maximizes the evaluation, the human
// minimizes it. When the search yields no move although player can move, the first
// legal move is returned.
func (m *Minimax) FindMoveFor(state *game.State, player game.Player) (game.Color, metrics.SearchMetric) {
	maximizing := player == game.AI
	r := run{Minimax: m, collector: m.newCollector()}
	r.collector.Start(m.depth, m.goroutines, m.pruning)

	var score float64
	var move game.Color
	if m.goroutines > 1 {
		score, move = r.searchRoot(state, m.depth, maximizing)
	} else {
		score, move = r.search(state, m.depth, maximizing, negInf, posInf)
	}

	if move == game.NoMove {
		if moves := state.MovesFor(player); len(moves) > 0 {
			log.Warn().Msgf("search returned no move for %s with %d legal moves, playing %q", player, len(moves), moves[0])
			move = moves[0]
		}
	}
	return move, r.collector.Complete(score)
}

// run carries the per-search collector so that Minimax itself stays immutable.
type run struct {
	*Minimax
	collector metrics.Collector
}

func (r *run) search(state *game.State, depth int, maximizing bool, alpha, beta float64) (float64, game.Color) {
	if depth <= 0 || state.IsOver() {
		r.collector.AddLeaf()
		return r.evaluate(state), game.NoMove
	}

	player := layerPlayer(maximizing)
	moves := state.MovesFor(player)
	if len(moves) == 0 {
		r.collector.AddLeaf()
		return r.evaluate(state), game.NoMove
	}
	r.collector.AddNode()

	best := posInf
	if maximizing {
		best = negInf
	}
	bestMove := moves[0]
	for i, move := range moves {
		child := state.Copy()
		if err := child.Apply(move, player); err != nil {
			continue
		}
		score, _ := r.search(child, depth-1, !maximizing, alpha, beta)
		if improves(maximizing, score, best) {
			best, bestMove = score, move
		}

		if maximizing {
			alpha = math.Max(alpha, best)
		} else {
			beta = math.Min(beta, best)
		}
		if r.pruning && beta <= alpha {
			if i < len(moves)-1 {
				r.collector.AddCutoff()
			}
			break
		}
	}
	return best, bestMove
}

// searchRoot scores every root move on the goroutine pool with a full window and keeps
// the first best one, which is the move the sequential search returns.
func (r *run) searchRoot(state *game.State, depth int, maximizing bool) (float64, game.Color) {
	player := layerPlayer(maximizing)
	moves := state.MovesFor(player)
	if depth <= 0 || state.IsOver() || len(moves) == 0 {
		r.collector.AddLeaf()
		return r.evaluate(state), game.NoMove
	}
	r.collector.AddNode()

	scores := make([]float64, len(moves))
	applied := make([]bool, len(moves))
	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < min(r.goroutines, len(moves)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				child := state.Copy()
				if err := child.Apply(moves[i], player); err != nil {
					continue
				}
				scores[i], _ = r.search(child, depth-1, !maximizing, negInf, posInf)
				applied[i] = true
			}
		}()
	}
	wg.Wait()

	best := posInf
	if maximizing {
		best = negInf
	}
	bestMove := moves[0]
	for i, score := range scores {
		if applied[i] && improves(maximizing, score, best) {
			best, bestMove = score, moves[i]
		}
	}
	return best, bestMove
}
