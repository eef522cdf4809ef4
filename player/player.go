package player

import (
	"filler/experiments/metrics"
	"filler/game"
	"filler/searcher"

	"golang.org/x/exp/rand"
)

// SearchAgent plays the searched move for either seat.
type SearchAgent struct {
	Searcher searcher.Searcher
}

func NewSearchAgent(s searcher.Searcher) *SearchAgent {
	return &SearchAgent{Searcher: s}
}

func (a *SearchAgent) FindMove(state *game.State) (game.Color, metrics.SearchMetric) {
	return a.Searcher.FindMoveFor(state, state.Turn)
}

// RandomAgent picks uniformly among the legal moves. Not safe for concurrent use.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state *game.State) (game.Color, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}

// GreedyAgent looks one move ahead and takes the color that grows its region the most.
// Ties keep the first move.
type GreedyAgent struct{}

func NewGreedyAgent() *GreedyAgent {
	return &GreedyAgent{}
}

func (GreedyAgent) FindMove(state *game.State) (game.Color, metrics.SearchMetric) {
	player := state.Turn
	best, bestSize := game.NoMove, -1
	for _, move := range state.LegalMoves() {
		child := state.Copy()
		if err := child.Apply(move, player); err != nil {
			continue
		}
		if size := child.BlobSize(player); size > bestSize {
			best, bestSize = move, size
		}
	}
	if best == game.NoMove {
		return game.NoMove, metrics.SearchMetric{}
	}
	return best, metrics.SearchMetric{Depth: 1, Score: float64(bestSize)}
}
