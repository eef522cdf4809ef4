package mcts

import (
	"filler/game"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests parallel MCTS (tree parallelization with virtual loss):
- policy: UCB1 value and its monotonicity
- expansion: unexplored moves are added in order with a virtual loss, terminal nodes return themselves
- selection: a fully expanded node picks the max UCB child
- backup: virtual losses are reversed, rewards follow the mover's perspective
- search: the winning move is found sequentially, in parallel and by time budget
*/

// fork is a position where blue wins at once for the AI and green loses.
func fork(t *testing.T) *game.State {
	t.Helper()
	board, err := game.NewBoard([][]game.Color{
		{"red", "blue", "blue"},
		{"green", "blue", "yellow"},
	})
	require.NoError(t, err)
	s, err := game.NewState(board, []game.Coord{{Row: 1, Col: 2}}, []game.Coord{{Row: 0, Col: 0}}, "yellow", "red", game.AI)
	require.NoError(t, err)
	return s
}

func TestUCB(t *testing.T) {
	t.Run("computing UCB value", func(t *testing.T) {
		policy := newUCB(CSquared, 100)

		expected := 5.0/10 + math.Sqrt(CSquared*math.Log(100)/10.0)
		require.InDelta(t, expected, policy.evaluate(5, 10), 0.0001, "Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("panics without visits", func(t *testing.T) {
		require.Panics(t, func() { newUCB(CSquared, 0) }, "Should panic when N is 0")
		require.Panics(t, func() { newUCB(CSquared, 10).evaluate(1, 0) }, "Should panic when n is 0")
	})

	t.Run("exploration decreases with child visits", func(t *testing.T) {
		policy := newUCB(CSquared, 100)

		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(5, 20))
		require.Greater(t, newUCB(CSquared, 1000).evaluate(5, 10), policy.evaluate(5, 10))
	})

	t.Run("win chance", func(t *testing.T) {
		require.Equal(t, 0.5, winChance(0))
		require.InDelta(t, 1, winChance(game.DefaultWeights().Win), 1e-9)
		require.InDelta(t, 0, winChance(-game.DefaultWeights().Win), 1e-9)
	})
}

func TestDecision(t *testing.T) {
	t.Run("expanding adds children in move order", func(t *testing.T) {
		state := fork(t)
		root := newDecision(nil, game.NoMove, game.Human, state)
		require.Equal(t, []game.Color{"green", "blue"}, root.unexplored)

		child, expanded := root.selectOrExpand(state)

		require.True(t, expanded)
		require.Equal(t, game.Color("green"), child.move)
		require.Equal(t, game.AI, child.player)
		require.Equal(t, 1.0, child.visits, "Child should apply a virtual loss")
		require.Equal(t, Loss, child.rewards)
		require.Equal(t, game.Color("green"), state.Color(game.AI), "State should advance by the move")
		require.Equal(t, []game.Color{"blue"}, root.unexplored)
	})

	t.Run("terminal node returns itself", func(t *testing.T) {
		state := fork(t)
		require.NoError(t, state.Apply("blue", game.AI))
		node := newDecision(nil, "blue", game.AI, state)
		before := state.Copy()

		child, expanded := node.selectOrExpand(state)

		require.False(t, expanded)
		require.Same(t, node, child)
		require.Equal(t, before, state)
	})

	t.Run("selecting picks the max UCB child", func(t *testing.T) {
		state := fork(t)
		root := &decision{player: game.Human, visits: 2}
		weak := &decision{parent: root, player: game.AI, move: "green", rewards: 0, visits: 1}
		strong := &decision{parent: root, player: game.AI, move: "blue", rewards: 1, visits: 1}
		root.children = []*decision{weak, strong}

		child, expanded := root.selectOrExpand(state)

		require.False(t, expanded)
		require.Same(t, strong, child)
		require.Equal(t, 2.0, strong.visits, "Child should apply a virtual loss")
		require.Equal(t, game.Color("blue"), state.Color(game.AI))
	})

	t.Run("backup reverses the virtual loss", func(t *testing.T) {
		root := &decision{player: game.Human}
		child := &decision{parent: root, player: game.AI}
		child.applyLoss()

		backup(child, 0.75)

		require.Equal(t, 1.0, child.visits)
		require.Equal(t, 0.75, child.rewards)
		require.Equal(t, 1.0, root.visits)
		require.Equal(t, 0.25, root.rewards, "Root should score from the human's perspective")
	})

	t.Run("best child is the most visited", func(t *testing.T) {
		root := &decision{}
		first := &decision{move: "green", visits: 3}
		second := &decision{move: "blue", visits: 5}
		third := &decision{move: "pink", visits: 5}
		root.children = []*decision{first, second, third}

		require.Same(t, second, root.bestChild())
		require.Nil(t, (&decision{}).bestChild())
	})
}

func TestFindMoveFor(t *testing.T) {
	t.Run("finds the winning move", func(t *testing.T) {
		state := fork(t)
		before := state.Copy()

		move, metric := NewMCTS(1, WithEpisodes(200), WithMetrics()).FindMoveFor(state, game.AI)

		require.Equal(t, game.Color("blue"), move)
		require.Equal(t, 1.0, metric.Score)
		require.Equal(t, 200, metric.Leaves)
		require.Equal(t, before, state, "Search should not mutate the caller's state")
	})

	t.Run("parallel search agrees", func(t *testing.T) {
		move, _ := NewMCTS(4, WithEpisodes(400)).FindMoveFor(fork(t), game.AI)

		require.Equal(t, game.Color("blue"), move)
	})

	t.Run("time budget", func(t *testing.T) {
		seed := uint64(3)
		state := game.RandomLayout(rand.New(rand.NewSource(seed)), 6, 6, game.Palette)
		for state.IsOver() {
			seed++
			state = game.RandomLayout(rand.New(rand.NewSource(seed)), 6, 6, game.Palette)
		}

		move, metric := NewMCTS(2, WithDuration(20*time.Millisecond), WithCutoff(4), WithMetrics()).FindMoveFor(state, game.Human)

		require.Contains(t, state.MovesFor(game.Human), move)
		require.Positive(t, metric.Leaves)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})

	t.Run("no legal move", func(t *testing.T) {
		state := fork(t)
		require.NoError(t, state.Apply("blue", game.AI))

		move, _ := NewMCTS(1, WithEpisodes(10)).FindMoveFor(state, game.Human)

		require.Equal(t, game.NoMove, move)
	})
}
