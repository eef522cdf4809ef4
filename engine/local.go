package engine

import (
	"filler/experiments/metrics"
	"filler/game"
	"filler/meta"
	"time"

	"github.com/rs/zerolog/log"
)

// Agent picks a move for whoever's turn it is. It returns game.NoMove only when that
// player cannot move.
type Agent interface {
	FindMove(state *game.State) (game.Color, metrics.SearchMetric)
}

// Local plays agent against agent on one state until the game ends or MaxTurns is reached.
type Local struct {
	State    *game.State
	Agents   [2]Agent // Indexed by game.Player
	MaxTurns int
}

func LocalEngine(state *game.State, human, ai Agent) *Local {
	if human == nil || ai == nil {
		panic("need an agent for both players")
	}
	return &Local{
		State:    state,
		Agents:   [2]Agent{human, ai},
		MaxTurns: meta.MAX_TURNS,
	}
}

// Run executes the game loop. The outcome is Undetermined when the turn limit stopped
// the game.
func (e *Local) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.State.Turn),
		StartTime:      time.Now(),
	}
	log.Debug().Msgf("%s is starting", e.State.Turn)

	var moveMetrics []metrics.MoveMetric
	turn := 1
	for ; !e.State.IsOver() && turn <= e.MaxTurns; turn++ {
		player := e.State.Turn
		move, search := e.Agents[player].FindMove(e.State)

		if !e.State.IsLegal(move, player) {
			moves := e.State.LegalMoves()
			log.Warn().Msgf("agent for %s returned illegal move %q, playing %q", player, move, moves[0])
			move = moves[0]
		}
		if err := e.State.Apply(move, player); err != nil {
			log.Error().Err(err).Msgf("failed to apply %q for %s", move, player)
			break
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       int(player),
			Move:         string(move),
			SearchMetric: search,
		})
	}
	e.State.Settle()

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = e.State.Outcome.String()
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.PlayerCells = e.State.BlobSize(game.Human)
	gameMetric.AICells = e.State.BlobSize(game.AI)

	if e.State.Outcome == game.Undetermined {
		log.Debug().Msgf("stopped after %d turns without a winner", e.MaxTurns)
	} else {
		log.Debug().Msgf("game ended after %d moves, winner: %s", gameMetric.TotalMoves, e.State.Outcome)
	}
	return e.State.Outcome, gameMetric, moveMetrics
}
