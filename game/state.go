package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

const unowned int8 = -1

// State is the single unit of truth passed between the applicator, the move generator,
// the terminal detector, the evaluator and the search.
type State struct {
	Board    *Board
	Turn     Player  // The player to act next
	Outcome  Outcome // Settled outcome, Undetermined while the game runs
	LastMove Color   // The last color chosen, NoMove before the first move

	blobs  [2][]Coord // Owned cells per player, in region-growth order
	colors [2]Color   // Current color per player
	owner  []int8     // Owner per cell, indexed like Board.cells (-1 indicates unowned)
}

// NewState builds a state from its parts and checks the ownership invariants: blob
// cells are in bounds, unique, disjoint and painted their owner's color.
func NewState(board *Board, playerBlob, aiBlob []Coord, playerColor, aiColor Color, turn Player) (*State, error) {
	if board == nil {
		return nil, fmt.Errorf("%w: nil board", ErrMalformed)
	}
	if !turn.Valid() {
		return nil, fmt.Errorf("%w: turn %d is not a player", ErrMalformed, turn)
	}
	s := &State{
		Board:  board,
		Turn:   turn,
		colors: [2]Color{playerColor, aiColor},
		owner:  make([]int8, board.Size()),
	}
	for i := range s.owner {
		s.owner[i] = unowned
	}
	for p, blob := range [2][]Coord{playerBlob, aiBlob} {
		player := Player(p)
		s.blobs[p] = make([]Coord, 0, len(blob))
		for _, c := range blob {
			if !board.InBounds(c) {
				return nil, fmt.Errorf("%w: %s blob cell %v out of bounds", ErrMalformed, player, c)
			}
			i := board.index(c)
			if s.owner[i] != unowned {
				return nil, fmt.Errorf("%w: cell %v claimed twice", ErrMalformed, c)
			}
			if board.cells[i] != s.colors[p] {
				return nil, fmt.Errorf("%w: %s blob cell %v is %q, expected %q", ErrMalformed, player, c, board.cells[i], s.colors[p])
			}
			s.owner[i] = int8(p)
			s.blobs[p] = append(s.blobs[p], c)
		}
	}
	return s, nil
}

// Copy returns a fully independent deep copy of the state.
func (s *State) Copy() *State {
	owner := make([]int8, len(s.owner))
	copy(owner, s.owner)

	var blobs [2][]Coord
	for p := range s.blobs {
		blobs[p] = make([]Coord, len(s.blobs[p]))
		copy(blobs[p], s.blobs[p])
	}

	return &State{
		Board:    s.Board.Copy(),
		Turn:     s.Turn,
		Outcome:  s.Outcome,
		LastMove: s.LastMove,
		blobs:    blobs,
		colors:   s.colors,
		owner:    owner,
	}
}

// Color returns the current color of p.
func (s *State) Color(p Player) Color {
	return s.colors[p]
}

// Blob returns the cells owned by p. The slice must not be modified.
func (s *State) Blob(p Player) []Coord {
	return s.blobs[p]
}

func (s *State) BlobSize(p Player) int {
	return len(s.blobs[p])
}

// Owner returns the player owning c and whether c is owned at all. Cells off the board
// are not owned.
func (s *State) Owner(c Coord) (Player, bool) {
	if !s.Board.InBounds(c) {
		return Human, false
	}
	o := s.owner[s.Board.index(c)]
	return Player(o), o != unowned
}

func (s *State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Turn))
	for p := range s.colors {
		hasher.Write([]byte(s.colors[p]))
		hasher.Write([]byte{0})
	}
	for _, color := range s.Board.cells {
		hasher.Write([]byte(color))
		hasher.Write([]byte{0})
	}
	for _, o := range s.owner {
		hasher.Write([]byte{byte(o)})
	}

	return StateHash(hasher.Sum64())
}

// Settle records the winner once the game is over and returns the stored outcome.
func (s *State) Settle() Outcome {
	if s.IsOver() {
		s.Outcome = s.Winner()
	}
	return s.Outcome
}
