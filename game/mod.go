package game

import "errors"

// Color is an opaque cell color. Two colors are the same color iff they are equal.
type Color string

// NoMove is returned by the search when a node has no move to offer.
const NoMove Color = ""

// Palette is the set of colors the original client paints boards with.
var Palette = []Color{"black", "yellow", "pink", "blue", "green", "purple"}

// Player identifies one of the two sides. The numeric values are part of the wire format.
type Player int

const (
	Human Player = iota
	AI
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) Valid() bool {
	return p == Human || p == AI
}

func (p Player) String() string {
	switch p {
	case Human:
		return "player"
	case AI:
		return "ai"
	default:
		return "unknown"
	}
}

// Outcome of a game. Undetermined is the zero value.
type Outcome int

const (
	Undetermined Outcome = iota
	PlayerWins
	AIWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "player"
	case AIWins:
		return "ai"
	case Draw:
		return "draw"
	default:
		return "undetermined"
	}
}

var (
	ErrEmptyBlob = errors.New("acting player has no region to expand")
	ErrOwnColor  = errors.New("chosen color is the acting player's current color")
	ErrMalformed = errors.New("malformed game state")
)

type StateHash uint64

// Evaluates a state to a score from the AI's perspective: positive favors the AI,
// negative favors the human player.
type Evaluate func(*State) float64
