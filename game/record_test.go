package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const validRecord = `{
	"action": "playerMove",
	"board": [["red","blue","blue"],["blue","blue","blue"],["blue","blue","green"]],
	"currentPlayer": 1,
	"winner": 0,
	"playerBlob": [[2,2]],
	"aiBlob": [[0,0]],
	"playerColor": "green",
	"aiColor": "red",
	"move": "blue"
}`

func TestParseRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		s, err := ParseRecord([]byte(validRecord))

		require.NoError(t, err)
		require.Equal(t, 3, s.Board.Rows)
		require.Equal(t, 3, s.Board.Cols)
		require.Equal(t, AI, s.Turn)
		require.Equal(t, Undetermined, s.Outcome)
		require.Equal(t, []Coord{{2, 2}}, s.Blob(Human))
		require.Equal(t, []Coord{{0, 0}}, s.Blob(AI))
		require.Equal(t, Color("green"), s.Color(Human))
		require.Equal(t, Color("red"), s.Color(AI))
		require.Equal(t, Color("blue"), s.LastMove)
	})

	t.Run("null winner and absent move are accepted", func(t *testing.T) {
		s, err := ParseRecord([]byte(`{
			"board": [["red","green"]], "currentPlayer": 0, "winner": null,
			"playerBlob": [[0,1]], "aiBlob": [[0,0]], "playerColor": "green", "aiColor": "red"
		}`))

		require.NoError(t, err)
		require.Equal(t, Undetermined, s.Outcome)
		require.Equal(t, NoMove, s.LastMove)
	})

	t.Run("empty regions are accepted", func(t *testing.T) {
		s, err := ParseRecord([]byte(`{
			"board": [["red","green"]], "currentPlayer": 0,
			"playerBlob": [], "aiBlob": [], "playerColor": "green", "aiColor": "red"
		}`))

		require.NoError(t, err)
		require.True(t, s.IsOver())
	})

	for _, field := range []string{"board", "currentPlayer", "playerBlob", "aiBlob", "playerColor", "aiColor"} {
		t.Run("missing "+field, func(t *testing.T) {
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(validRecord), &fields))
			delete(fields, field)
			data, err := json.Marshal(fields)
			require.NoError(t, err)

			s, err := ParseRecord(data)

			require.Nil(t, s, "No partial state should be produced")
			require.ErrorIs(t, err, ErrMalformed)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, field, parseErr.Field)
		})
	}

	malformed := map[string]string{
		"not json":        `{"board":`,
		"board of ints":   `{"board": [[1,2]], "currentPlayer": 0, "playerBlob": [], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"ragged board":    `{"board": [["a","b"],["a"]], "currentPlayer": 0, "playerBlob": [], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"empty board":     `{"board": [], "currentPlayer": 0, "playerBlob": [], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"unknown player":  `{"board": [["a","b"]], "currentPlayer": 2, "playerBlob": [], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"unknown winner":  `{"board": [["a","b"]], "currentPlayer": 0, "winner": 9, "playerBlob": [], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"short pair":      `{"board": [["a","b"]], "currentPlayer": 0, "playerBlob": [[0]], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"out of bounds":   `{"board": [["a","b"]], "currentPlayer": 0, "playerBlob": [[3,0]], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"overlap":         `{"board": [["a","b"]], "currentPlayer": 0, "playerBlob": [[0,0]], "aiBlob": [[0,0]], "playerColor": "a", "aiColor": "a"}`,
		"wrong paint":     `{"board": [["a","b"]], "currentPlayer": 0, "playerBlob": [[0,1]], "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
		"empty color":     `{"board": [["a","b"]], "currentPlayer": 0, "playerBlob": [], "aiBlob": [], "playerColor": "", "aiColor": "b"}`,
		"blob not a list": `{"board": [["a","b"]], "currentPlayer": 0, "playerBlob": 5, "aiBlob": [], "playerColor": "a", "aiColor": "b"}`,
	}
	for name, data := range malformed {
		t.Run(name, func(t *testing.T) {
			s, err := ParseRecord([]byte(data))

			require.Nil(t, s)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestRecord(t *testing.T) {
	t.Run("state flattens back to the wire shape", func(t *testing.T) {
		s, err := ParseRecord([]byte(validRecord))
		require.NoError(t, err)
		require.NoError(t, s.Apply("blue", AI))
		s.Settle()

		r := s.Record()

		require.Equal(t, Human, r.CurrentPlayer)
		require.Equal(t, AIWins, r.Winner)
		require.Equal(t, [][]int{{2, 2}}, r.PlayerBlob)
		require.Len(t, r.AIBlob, 8)
		require.Equal(t, Color("blue"), r.AIColor)
		require.Equal(t, Color("blue"), r.Move)
		require.Equal(t, Color("blue"), r.Board[0][0])

		data, err := json.Marshal(r)
		require.NoError(t, err)
		again, err := ParseRecord(data)
		require.NoError(t, err)
		require.Equal(t, s.Hash(), again.Hash())
	})

	t.Run("grid is a copy", func(t *testing.T) {
		s, err := ParseRecord([]byte(validRecord))
		require.NoError(t, err)

		r := s.Record()
		r.Board[0][0] = "purple"

		require.Equal(t, Color("red"), s.Board.At(Coord{0, 0}))
	})
}
