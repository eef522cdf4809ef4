package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var shortColors = map[byte]Color{
	'r': "red", 'b': "blue", 'g': "green", 'y': "yellow", 'p': "pink", 'k': "black",
}

// stateFrom builds a state from rows of single-letter colors, e.g. "rbb".
func stateFrom(t *testing.T, rows []string, playerBlob, aiBlob []Coord, turn Player) *State {
	t.Helper()
	grid := make([][]Color, len(rows))
	for r, row := range rows {
		row = strings.TrimSpace(row)
		grid[r] = make([]Color, len(row))
		for c := range row {
			color, ok := shortColors[row[c]]
			require.True(t, ok, "unknown color letter %q", row[c])
			grid[r][c] = color
		}
	}
	board, err := NewBoard(grid)
	require.NoError(t, err)

	var playerColor, aiColor Color
	if len(playerBlob) > 0 {
		playerColor = board.At(playerBlob[0])
	}
	if len(aiBlob) > 0 {
		aiColor = board.At(aiBlob[0])
	}
	s, err := NewState(board, playerBlob, aiBlob, playerColor, aiColor, turn)
	require.NoError(t, err)
	return s
}

// requireInvariants checks that every region is painted its owner's color, is a single
// 4-connected component, is disjoint from the other region and mirrors the owner grid.
func requireInvariants(t *testing.T, s *State) {
	t.Helper()
	owned := 0
	for _, p := range []Player{Human, AI} {
		blob := s.Blob(p)
		members := make(map[Coord]bool, len(blob))
		for _, c := range blob {
			require.False(t, members[c], "%s region lists %v twice", p, c)
			members[c] = true
			require.Equal(t, s.Color(p), s.Board.At(c), "%s region cell %v has the wrong color", p, c)
			owner, ok := s.Owner(c)
			require.True(t, ok)
			require.Equal(t, p, owner)
		}
		owned += len(blob)

		if len(blob) == 0 {
			continue
		}
		reached := map[Coord]bool{blob[0]: true}
		queue := []Coord{blob[0]}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			s.Board.neighbors(c, func(n Coord) {
				if members[n] && !reached[n] {
					reached[n] = true
					queue = append(queue, n)
				}
			})
		}
		require.Len(t, reached, len(blob), "%s region is not 4-connected", p)
	}

	count := 0
	for _, o := range s.owner {
		if o != unowned {
			count++
		}
	}
	require.Equal(t, owned, count, "owner grid does not mirror the regions")
}
