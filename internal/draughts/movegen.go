package draughts

// LegalMoves returns every legal move for side on b.
//
// If any piece of side can capture, only the capture paths taking the
// largest number of pieces are legal. Otherwise men step one square
// forward and kings fly any distance along an empty diagonal. An empty
// result means side cannot move.
func LegalMoves(b Board, side Color, rules Rules) []Move {
	var paths []CapturePath
	for _, from := range b.Positions(side) {
		paths = append(paths, CapturePaths(b, from, rules)...)
	}
	if len(paths) > 0 {
		return indexMoves(longestCaptures(paths))
	}
	return indexMoves(simpleMoves(b, side))
}

// MaxCaptureCount is the largest number of pieces side can take in one move,
// or 0 when it has no capture.
func MaxCaptureCount(b Board, side Color, rules Rules) int {
	best := 0
	for _, from := range b.Positions(side) {
		for _, p := range CapturePaths(b, from, rules) {
			if len(p.Captured) > best {
				best = len(p.Captured)
			}
		}
	}
	return best
}

func longestCaptures(paths []CapturePath) []Move {
	best := 0
	for _, p := range paths {
		if len(p.Captured) > best {
			best = len(p.Captured)
		}
	}
	moves := make([]Move, 0, len(paths))
	for _, p := range paths {
		if len(p.Captured) == best {
			moves = append(moves, moveFromPath(p))
		}
	}
	return moves
}

func simpleMoves(b Board, side Color) []Move {
	var moves []Move
	for _, from := range b.Positions(side) {
		pc, _ := b.At(from)
		if pc.Rank == Man {
			for _, d := range diagonals {
				if d.dr != side.forward() {
					continue
				}
				to := from.add(d)
				if b.IsEmpty(to) {
					moves = append(moves, Move{
						From:     from,
						To:       to,
						Landings: []Position{to},
						Promotes: to.Row == side.promotionRow(),
					})
				}
			}
			continue
		}
		for _, d := range diagonals {
			for to := from.add(d); b.IsEmpty(to); to = to.add(d) {
				moves = append(moves, Move{From: from, To: to, Landings: []Position{to}})
			}
		}
	}
	return moves
}

func indexMoves(moves []Move) []Move {
	seen := make(map[[2]Position]int, len(moves))
	for i := range moves {
		key := [2]Position{moves[i].From, moves[i].To}
		moves[i].PathIndex = seen[key]
		seen[key]++
	}
	return moves
}
