package game

// Apply recolors the region of p to color and grows it by flood fill over every
// 4-connected cell already painted color. The turn passes to the opponent.
//
// An empty region or p's own color leaves the state untouched and returns
// ErrEmptyBlob or ErrOwnColor respectively. Cells owned by the opponent are never
// absorbed, so the two regions stay disjoint whatever color is passed.
func (s *State) Apply(color Color, p Player) error {
	blob := s.blobs[p]
	if len(blob) == 0 {
		return ErrEmptyBlob
	}
	if color == s.colors[p] {
		return ErrOwnColor
	}

	b := s.Board
	opponent := int8(p.Opponent())
	s.colors[p] = color

	// The region doubles as the BFS queue: cells are appended once, in visitation order.
	region := make([]Coord, 0, len(blob)+4)
	inRegion := make([]bool, b.Size())
	for _, c := range blob {
		i := b.index(c)
		b.cells[i] = color
		inRegion[i] = true
		region = append(region, c)
	}

	for head := 0; head < len(region); head++ {
		c := region[head]
		for _, d := range directions {
			n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
			if !b.InBounds(n) {
				continue
			}
			i := b.index(n)
			if inRegion[i] || s.owner[i] == opponent || b.cells[i] != color {
				continue
			}
			inRegion[i] = true
			s.owner[i] = int8(p)
			region = append(region, n)
		}
	}

	s.blobs[p] = region
	s.LastMove = color
	s.Turn = p.Opponent()
	return nil
}
