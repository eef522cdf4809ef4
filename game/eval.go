package game

// Weights of the static evaluation features.
type Weights struct {
	AIBlob     float64 // per cell owned by the AI
	PlayerBlob float64 // per cell owned by the human player (subtracted)
	AIMobility float64 // per legal move of the AI
	Frontier   float64 // per player-colored cell bordering the AI region
	Win        float64 // magnitude returned for a decided game, dominates every feature
}

func DefaultWeights() Weights {
	return Weights{
		AIBlob:     3.0,
		PlayerBlob: 2.0,
		AIMobility: 0.5,
		Frontier:   1.0,
		Win:        1e6,
	}
}

// EvaluateDefault scores a state with the default weights.
var EvaluateDefault Evaluate = DefaultWeights().Evaluate

// Evaluate scores s from the AI's perspective. A decided game scores +Win for the AI,
// -Win for the player and 0 for a draw; anything else is the weighted sum of region
// sizes, AI mobility and the player-colored frontier of the AI region.
func (w Weights) Evaluate(s *State) float64 {
	switch s.Winner() {
	case AIWins:
		return w.Win
	case PlayerWins:
		return -w.Win
	case Draw:
		return 0
	}

	return w.AIBlob*float64(len(s.blobs[AI])) -
		w.PlayerBlob*float64(len(s.blobs[Human])) +
		w.AIMobility*float64(len(s.MovesFor(AI))) +
		w.Frontier*float64(s.frontier(AI, s.colors[Human]))
}

// frontier counts the distinct cells of the given color that border p's region.
func (s *State) frontier(p Player, color Color) int {
	b := s.Board
	seen := make([]bool, b.Size())
	count := 0
	for _, c := range s.blobs[p] {
		b.neighbors(c, func(n Coord) {
			i := b.index(n)
			if seen[i] || b.cells[i] != color {
				return
			}
			seen[i] = true
			count++
		})
	}
	return count
}
