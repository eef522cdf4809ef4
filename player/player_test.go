package player

import (
	"filler/engine"
	"filler/game"
	"filler/searcher"
	"filler/searcher/mcts"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var (
	_ engine.Agent = (*SearchAgent)(nil)
	_ engine.Agent = (*RandomAgent)(nil)
	_ engine.Agent = (*GreedyAgent)(nil)
)

func state(t *testing.T, grid [][]game.Color, playerBlob, aiBlob []game.Coord, turn game.Player) *game.State {
	t.Helper()
	board, err := game.NewBoard(grid)
	require.NoError(t, err)
	s, err := game.NewState(board, playerBlob, aiBlob, board.At(playerBlob[0]), board.At(aiBlob[0]), turn)
	require.NoError(t, err)
	return s
}

func TestRandomAgent(t *testing.T) {
	t.Run("plays legal moves reproducibly", func(t *testing.T) {
		a, b := NewRandomAgent(42), NewRandomAgent(42)
		s := game.RandomLayout(rand.New(rand.NewSource(1)), 8, 8, game.Palette)
		for !s.IsOver() {
			move, _ := a.FindMove(s)
			other, _ := b.FindMove(s)
			require.Equal(t, move, other, "Same seed should give the same moves")
			require.True(t, s.IsLegal(move, s.Turn))
			require.NoError(t, s.Apply(move, s.Turn))
		}
	})

	t.Run("no legal move", func(t *testing.T) {
		s := state(t, [][]game.Color{{"red", "blue"}}, []game.Coord{{Row: 0, Col: 0}}, []game.Coord{{Row: 0, Col: 1}}, game.Human)

		move, _ := NewRandomAgent(1).FindMove(s)

		require.Equal(t, game.NoMove, move)
	})
}

func TestGreedyAgent(t *testing.T) {
	t.Run("takes the largest growth", func(t *testing.T) {
		s := state(t, [][]game.Color{
			{"red", "blue", "blue", "blue"},
			{"green", "black", "pink", "yellow"},
		}, []game.Coord{{Row: 0, Col: 0}}, []game.Coord{{Row: 1, Col: 3}}, game.Human)
		require.Equal(t, []game.Color{"green", "blue"}, s.LegalMoves())

		move, metric := NewGreedyAgent().FindMove(s)

		require.Equal(t, game.Color("blue"), move)
		require.Equal(t, 4.0, metric.Score)
	})

	t.Run("ties keep the first move", func(t *testing.T) {
		s := state(t, [][]game.Color{
			{"red", "blue", "pink"},
			{"green", "black", "yellow"},
		}, []game.Coord{{Row: 0, Col: 0}}, []game.Coord{{Row: 1, Col: 2}}, game.Human)

		move, _ := NewGreedyAgent().FindMove(s)

		require.Equal(t, game.Color("green"), move)
	})

	t.Run("moves for the AI seat", func(t *testing.T) {
		s := state(t, [][]game.Color{
			{"red", "blue", "blue", "blue"},
			{"green", "black", "pink", "yellow"},
		}, []game.Coord{{Row: 0, Col: 0}}, []game.Coord{{Row: 1, Col: 3}}, game.AI)

		move, _ := NewGreedyAgent().FindMove(s)

		require.Contains(t, s.MovesFor(game.AI), move)
	})
}

func TestSearchAgent(t *testing.T) {
	m := searcher.NewMinimax(searcher.WithDepth(2))
	a := NewSearchAgent(m)
	s := game.RandomLayout(rand.New(rand.NewSource(7)), 6, 6, game.Palette)

	for _, turn := range []game.Player{game.Human, game.AI} {
		s.Turn = turn
		want, _ := m.FindMoveFor(s, turn)
		got, _ := a.FindMove(s)
		require.Equal(t, want, got, "Should search for the player to move")
	}
}

func TestSearchAgentWithMCTS(t *testing.T) {
	board, err := game.NewBoard([][]game.Color{
		{"red", "blue", "blue"},
		{"green", "blue", "yellow"},
	})
	require.NoError(t, err)
	s, err := game.NewState(board, []game.Coord{{Row: 1, Col: 2}}, []game.Coord{{Row: 0, Col: 0}}, "yellow", "red", game.AI)
	require.NoError(t, err)

	move, _ := NewSearchAgent(mcts.NewMCTS(1, mcts.WithEpisodes(100))).FindMove(s)

	require.Equal(t, game.Color("blue"), move)
}
