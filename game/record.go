package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record is the flat wire shape of a state, field for field what the browser client
// sends and renders. Coordinates are [row, col] pairs.
type Record struct {
	Board         [][]Color `json:"board"`
	CurrentPlayer Player    `json:"currentPlayer"`
	Winner        Outcome   `json:"winner"`
	PlayerBlob    [][]int   `json:"playerBlob"`
	AIBlob        [][]int   `json:"aiBlob"`
	PlayerColor   Color     `json:"playerColor"`
	AIColor       Color     `json:"aiColor"`
	Move          Color     `json:"move"`
}

// ParseError reports which field of an incoming record is missing or malformed.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed game state: %v", e.Err)
	}
	return fmt.Sprintf("malformed game state field %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

var errMissing = errors.New("missing")

// Presence is tracked with pointers, the zero value of every field is a legal value.
type rawRecord struct {
	Board         *[][]Color `json:"board"`
	CurrentPlayer *Player    `json:"currentPlayer"`
	Winner        *Outcome   `json:"winner"`
	PlayerBlob    *[][]int   `json:"playerBlob"`
	AIBlob        *[][]int   `json:"aiBlob"`
	PlayerColor   *Color     `json:"playerColor"`
	AIColor       *Color     `json:"aiColor"`
	Move          *Color     `json:"move"`
}

// ParseRecord decodes a JSON record and builds the state it describes. Board, blobs,
// colors and current player are required; winner and move may be absent or null.
func ParseRecord(data []byte) (*State, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ParseError{Field: typeErr.Field, Err: err}
		}
		return nil, &ParseError{Err: err}
	}

	switch {
	case raw.Board == nil:
		return nil, &ParseError{Field: "board", Err: errMissing}
	case raw.CurrentPlayer == nil:
		return nil, &ParseError{Field: "currentPlayer", Err: errMissing}
	case raw.PlayerBlob == nil:
		return nil, &ParseError{Field: "playerBlob", Err: errMissing}
	case raw.AIBlob == nil:
		return nil, &ParseError{Field: "aiBlob", Err: errMissing}
	case raw.PlayerColor == nil:
		return nil, &ParseError{Field: "playerColor", Err: errMissing}
	case raw.AIColor == nil:
		return nil, &ParseError{Field: "aiColor", Err: errMissing}
	}

	record := Record{
		Board:         *raw.Board,
		CurrentPlayer: *raw.CurrentPlayer,
		PlayerBlob:    *raw.PlayerBlob,
		AIBlob:        *raw.AIBlob,
		PlayerColor:   *raw.PlayerColor,
		AIColor:       *raw.AIColor,
	}
	if raw.Winner != nil {
		record.Winner = *raw.Winner
	}
	if raw.Move != nil {
		record.Move = *raw.Move
	}
	return FromRecord(record)
}

// FromRecord builds a state from a decoded record. No partial state is returned on error.
func FromRecord(r Record) (*State, error) {
	board, err := NewBoard(r.Board)
	if err != nil {
		return nil, &ParseError{Field: "board", Err: err}
	}
	if !r.CurrentPlayer.Valid() {
		return nil, &ParseError{Field: "currentPlayer", Err: fmt.Errorf("unknown player %d", r.CurrentPlayer)}
	}
	if r.Winner < Undetermined || r.Winner > Draw {
		return nil, &ParseError{Field: "winner", Err: fmt.Errorf("unknown outcome %d", r.Winner)}
	}
	if r.PlayerColor == NoMove {
		return nil, &ParseError{Field: "playerColor", Err: errors.New("empty color")}
	}
	if r.AIColor == NoMove {
		return nil, &ParseError{Field: "aiColor", Err: errors.New("empty color")}
	}
	playerBlob, err := parseCoords(r.PlayerBlob)
	if err != nil {
		return nil, &ParseError{Field: "playerBlob", Err: err}
	}
	aiBlob, err := parseCoords(r.AIBlob)
	if err != nil {
		return nil, &ParseError{Field: "aiBlob", Err: err}
	}

	s, err := NewState(board, playerBlob, aiBlob, r.PlayerColor, r.AIColor, r.CurrentPlayer)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	s.Outcome = r.Winner
	s.LastMove = r.Move
	return s, nil
}

func parseCoords(pairs [][]int) ([]Coord, error) {
	coords := make([]Coord, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("coordinate %d has %d components, expected [row, col]", i, len(pair))
		}
		coords[i] = Coord{Row: pair[0], Col: pair[1]}
	}
	return coords, nil
}

// Record flattens the state back into its wire shape.
func (s *State) Record() Record {
	return Record{
		Board:         s.Board.Grid(),
		CurrentPlayer: s.Turn,
		Winner:        s.Outcome,
		PlayerBlob:    formatCoords(s.blobs[Human]),
		AIBlob:        formatCoords(s.blobs[AI]),
		PlayerColor:   s.colors[Human],
		AIColor:       s.colors[AI],
		Move:          s.LastMove,
	}
}

func formatCoords(coords []Coord) [][]int {
	pairs := make([][]int, len(coords))
	for i, c := range coords {
		pairs[i] = []int{c.Row, c.Col}
	}
	return pairs
}
