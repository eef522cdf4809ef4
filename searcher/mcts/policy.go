package mcts

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards estimate the chance of winning
const (
	Win  = 1.0
	Loss = 1 - Win
	Draw = (Win + Loss) / 2
)

// evalScale maps a cut-off evaluation onto a win probability.
const evalScale = 10.0

type ucb struct {
	numerator float64
}

func newUCB(cSquared float64, N float64) ucb {
	if N <= 0 {
		panic("N must be positive")
	}
	return ucb{numerator: cSquared * math.Log(N)}
}

// UCB1 = q/n + sqrt(c^2*ln(N)/n)
func (u ucb) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return q/n + math.Sqrt(u.numerator/n)
}

// winChance turns an evaluation from the AI's perspective into the AI's chance of winning.
func winChance(score float64) float64 {
	return 1 / (1 + math.Exp(-score/evalScale))
}
