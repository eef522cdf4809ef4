package game

import "golang.org/x/exp/rand"

// RandomLayout paints a rows×cols board so that no cell repeats the color above it or to
// its left, and seats the human in the bottom-left corner and the AI in the top-right
// corner. Both sides get a first move whenever the board allows it. The human starts. Experiments and tests use it; games are set up by clients.
func RandomLayout(rng *rand.Rand, rows, cols int, palette []Color) *State {
	if rows < 1 || cols < 2 || len(palette) < 3 {
		panic("layout needs at least one row, two columns and three colors")
	}

	grid := make([][]Color, rows)
	for r := range grid {
		grid[r] = make([]Color, cols)
		for c := range grid[r] {
			allowed := make([]Color, 0, len(palette))
			for _, color := range palette {
				if r > 0 && grid[r-1][c] == color {
					continue
				}
				if c > 0 && grid[r][c-1] == color {
					continue
				}
				allowed = append(allowed, color)
			}
			grid[r][c] = allowed[rng.Intn(len(allowed))]
		}
	}

	human := Coord{Row: rows - 1, Col: 0}
	ai := Coord{Row: 0, Col: cols - 1}
	seat(grid, human, ai, palette)

	board, err := NewBoard(grid)
	if err != nil {
		panic(err)
	}
	s, err := NewState(board, []Coord{human}, []Coord{ai}, board.At(human), board.At(ai), Human)
	if err != nil {
		panic(err)
	}
	return s
}

// seat repaints the two corners when they share a color or leave a side without a first
// move. The painted colors are kept when they work, otherwise the first pair in palette
// order does. Boards too small to give both sides a move only get distinct corners.
func seat(grid [][]Color, human, ai Coord, palette []Color) {
	pairs := [][2]Color{{grid[human.Row][human.Col], grid[ai.Row][ai.Col]}}
	for _, h := range palette {
		for _, a := range palette {
			pairs = append(pairs, [2]Color{h, a})
		}
	}

	for _, needMoves := range []bool{true, false} {
		for _, pair := range pairs {
			if seatable(grid, human, ai, pair, needMoves) {
				grid[human.Row][human.Col], grid[ai.Row][ai.Col] = pair[0], pair[1]
				return
			}
		}
	}
}

func seatable(grid [][]Color, human, ai Coord, pair [2]Color, needMoves bool) bool {
	h, a := pair[0], pair[1]
	if h == a {
		return false
	}

	oldH, oldA := grid[human.Row][human.Col], grid[ai.Row][ai.Col]
	grid[human.Row][human.Col], grid[ai.Row][ai.Col] = h, a
	defer func() {
		grid[human.Row][human.Col], grid[ai.Row][ai.Col] = oldH, oldA
	}()

	if conflicts(grid, human, h) || conflicts(grid, ai, a) {
		return false
	}
	return !needMoves || (hasMove(grid, human, h, a) && hasMove(grid, ai, h, a))
}

// hasMove reports whether a neighbor of c carries a color neither side holds.
func hasMove(grid [][]Color, c Coord, h, a Color) bool {
	for _, d := range directions {
		n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if inGrid(grid, n) && grid[n.Row][n.Col] != h && grid[n.Row][n.Col] != a {
			return true
		}
	}
	return false
}

func conflicts(grid [][]Color, c Coord, color Color) bool {
	for _, d := range directions {
		n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if inGrid(grid, n) && grid[n.Row][n.Col] == color {
			return true
		}
	}
	return false
}

func inGrid(grid [][]Color, c Coord) bool {
	return c.Row >= 0 && c.Row < len(grid) && c.Col >= 0 && c.Col < len(grid[0])
}
