package mcts

import (
	"filler/game"
	"sync"
)

// decision is a tree node. Its statistics are kept from the perspective of player, the
// one whose move led here.
type decision struct {
	sync.Mutex
	parent     *decision
	player     game.Player
	move       game.Color
	unexplored []game.Color
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, move game.Color, player game.Player, state *game.State) *decision {
	var moves []game.Color
	if !state.IsOver() {
		moves = state.LegalMoves()
	}
	return &decision{
		parent:     parent,
		player:     player,
		move:       move,
		unexplored: moves,
	}
}

// selectOrExpand advances state by one move. It adds a child for the next unexplored move
// and reports expanded, otherwise it selects the child with the highest UCB. A terminal
// node returns itself and leaves state as is. The returned child carries a virtual loss.
func (d *decision) selectOrExpand(state *game.State) (child *decision, expanded bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, false
	}

	mover := state.Turn
	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		_ = state.Apply(move, mover)
		child = newDecision(d, move, mover, state)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, true
	}

	// Fully expanded node
	child = d.pickChild()
	_ = state.Apply(child.move, mover)
	child.applyLoss()
	return child, false
}

func (d *decision) pickChild() *decision {
	var N float64
	for _, child := range d.children {
		N += child.Visits()
	}
	policy := newUCB(CSquared, N)

	var best *decision
	var bestScore float64
	for _, child := range d.children {
		if score := child.score(policy); best == nil || score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(policy ucb) float64 {
	d.Lock()
	defer d.Unlock()

	return policy.evaluate(d.rewards, d.visits)
}

// backup records the AI's chance of winning from one simulation and returns the parent.
func (d *decision) backup(aiChance float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.rewards -= Loss
		d.visits--
	}

	if d.player == game.AI {
		d.rewards += aiChance
	} else {
		d.rewards += 1 - aiChance
	}
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.Lock()
	defer d.Unlock()

	return d.visits
}

// bestChild is the most visited child, the first one on ties. Nil for a leaf.
func (d *decision) bestChild() *decision {
	d.Lock()
	defer d.Unlock()

	var best *decision
	for _, child := range d.children {
		if best == nil || child.Visits() > best.Visits() {
			best = child
		}
	}
	return best
}
