package game

// IsOver reports whether the game has ended: a region is empty, the regions cover the
// whole board, or either player has no legal move.
func (s *State) IsOver() bool {
	if len(s.blobs[Human]) == 0 || len(s.blobs[AI]) == 0 {
		return true
	}
	if s.covered() {
		return true
	}
	return len(s.MovesFor(Human)) == 0 || len(s.MovesFor(AI)) == 0
}

// Winner determines the outcome independently of whose turn it is. A covered board is
// decided by region size before anything else. A player with an empty region loses to the
// opponent, both empty is a draw. A player without moves loses, the human checked first.
func (s *State) Winner() Outcome {
	human, ai := len(s.blobs[Human]), len(s.blobs[AI])
	switch {
	case s.covered():
		return compareSizes(human, ai)
	case human == 0 && ai == 0:
		return Draw
	case human == 0:
		return AIWins
	case ai == 0:
		return PlayerWins
	case len(s.MovesFor(Human)) == 0:
		return AIWins
	case len(s.MovesFor(AI)) == 0:
		return PlayerWins
	default:
		return Undetermined
	}
}

func (s *State) covered() bool {
	return len(s.blobs[Human])+len(s.blobs[AI]) == s.Board.Size()
}

func compareSizes(human, ai int) Outcome {
	switch {
	case human > ai:
		return PlayerWins
	case ai > human:
		return AIWins
	default:
		return Draw
	}
}
