package searcher

import (
	"filler/experiments/metrics"
	"filler/game"
	"math"
)

// Searcher picks a color for a player. Implementations never mutate the given state.
type Searcher interface {
	FindMoveFor(state *game.State, player game.Player) (game.Color, metrics.SearchMetric)
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// The AI maximizes, the human minimizes.
func layerPlayer(maximizing bool) game.Player {
	if maximizing {
		return game.AI
	}
	return game.Human
}

// improves reports whether score strictly beats best for the layer. Ties keep the
// earlier move.
func improves(maximizing bool, score, best float64) bool {
	if maximizing {
		return score > best
	}
	return score < best
}
