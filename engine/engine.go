package engine

import (
	"errors"
	"fmt"
	"filler/experiments/metrics"
	"filler/game"
	"filler/searcher"
	"filler/utils"

	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalMove = errors.New("illegal move")
)

// Result describes what an action did to the state.
type Result struct {
	Move    game.Color
	Moved   bool
	Outcome game.Outcome
	Search  metrics.SearchMetric
}

// Engine applies the two actions a client can request: a human move and an AI reply.
type Engine struct {
	searcher searcher.Searcher
}

func New(s searcher.Searcher) *Engine {
	return &Engine{searcher: s}
}

// ApplyPlayerMove plays color for the human and settles the outcome. The state must be
// the human's turn.
func (e *Engine) ApplyPlayerMove(state *game.State, color game.Color) (Result, error) {
	if state.IsOver() {
		state.Settle()
		return Result{Outcome: state.Outcome}, ErrGameOver
	}
	if state.Turn != game.Human {
		return Result{Outcome: state.Outcome}, fmt.Errorf("%w: %q while it is the %s's turn", ErrIllegalMove, color, state.Turn)
	}
	if !state.IsLegal(color, game.Human) {
		return Result{Outcome: state.Outcome}, fmt.Errorf("%w: %q for %s", ErrIllegalMove, color, game.Human)
	}
	if err := state.Apply(color, game.Human); err != nil {
		return Result{Outcome: state.Outcome}, fmt.Errorf("failed to apply %q: %w", color, err)
	}
	state.Settle()
	return Result{Move: color, Moved: true, Outcome: state.Outcome}, nil
}

// ApplyAIMove searches a move for the AI and plays it. A finished game is not an
// error: the settled outcome is returned with Moved unset.
func (e *Engine) ApplyAIMove(state *game.State) (Result, error) {
	if state.IsOver() {
		state.Settle()
		return Result{Outcome: state.Outcome}, nil
	}

	move, metric := e.searcher.FindMoveFor(state, game.AI)
	moves := state.MovesFor(game.AI)
	if utils.FindIndex(moves, move) < 0 {
		log.Warn().Msgf("searcher proposed %q which is not legal for the AI, playing %q", move, moves[0])
		move = moves[0]
	}
	if err := state.Apply(move, game.AI); err != nil {
		return Result{Outcome: state.Outcome, Search: metric}, fmt.Errorf("failed to apply %q: %w", move, err)
	}
	state.Settle()
	return Result{Move: move, Moved: true, Outcome: state.Outcome, Search: metric}, nil
}
