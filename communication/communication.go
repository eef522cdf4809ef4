package communication

import (
	"encoding/json"
	"errors"
	"filler/game"
	"filler/gamemaster"
	"fmt"
)

const (
	ActionPlayerMove = "playerMove"
	ActionAIMove     = "aiMove"

	TypePing = "ping"
)

var ErrUnknownAction = errors.New("unknown action")

// Message is a client request: the action and the state it applies to, flattened into
// one object. For a player move, Move holds the chosen color.
type Message struct {
	Action string `json:"action"`
	game.Record
}

// Response carries the state after an action, or the reason the request failed.
type Response struct {
	Type string `json:"type"`
	*game.Record
	Error string `json:"error,omitempty"`
}

type Request struct {
	Action string
	State  *game.State
	Move   game.Color
}

// DecodeMessage parses a client request. Malformed states fail with *game.ParseError.
func DecodeMessage(data []byte) (Request, error) {
	var header struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return Request{}, &game.ParseError{Err: err}
	}
	if header.Action != ActionPlayerMove && header.Action != ActionAIMove {
		return Request{}, fmt.Errorf("%w %q", ErrUnknownAction, header.Action)
	}

	state, err := game.ParseRecord(data)
	if err != nil {
		return Request{}, err
	}
	return Request{Action: header.Action, State: state, Move: state.LastMove}, nil
}

func NewResponse(u gamemaster.Update) Response {
	if u.Kind == gamemaster.Failed || u.Err != nil {
		return ErrorResponse(u.Err)
	}
	record := u.Record
	return Response{Type: u.Kind.String(), Record: &record}
}

func ErrorResponse(err error) Response {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	return Response{Type: gamemaster.Failed.String(), Error: msg}
}
