package game

// LegalMoves returns the colors available to the player whose turn it is.
func (s *State) LegalMoves() []Color {
	return s.MovesFor(s.Turn)
}

// MovesFor returns the distinct colors bordering p's region, excluding p's own color and
// the opponent's color. Colors are listed in discovery order: region order, then
// neighbor order (up, down, left, right).
func (s *State) MovesFor(p Player) []Color {
	blob := s.blobs[p]
	if len(blob) == 0 {
		return nil
	}

	b := s.Board
	own, other := s.colors[p], s.colors[p.Opponent()]
	moves := make([]Color, 0, len(Palette))
	for _, c := range blob {
		for _, d := range directions {
			n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
			if !b.InBounds(n) {
				continue
			}
			color := b.cells[b.index(n)]
			if color == own || color == other || containsColor(moves, color) {
				continue
			}
			moves = append(moves, color)
		}
	}
	return moves
}

// The palette is tiny, a linear scan beats a set.
func containsColor(colors []Color, color Color) bool {
	for _, c := range colors {
		if c == color {
			return true
		}
	}
	return false
}

// IsLegal reports whether p may choose color in this state.
func (s *State) IsLegal(color Color, p Player) bool {
	return containsColor(s.MovesFor(p), color)
}
