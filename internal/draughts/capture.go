package draughts

// CapturePath is one maximal capture sequence of a single piece in one turn.
type CapturePath struct {
	From Position
	// Landings holds every square the piece lands on, in order. The last
	// one is the destination.
	Landings []Position
	// Captured holds the jumped pieces in the order they were taken.
	Captured []Position
	Promotes bool
}

func (p CapturePath) To() Position {
	if len(p.Landings) == 0 {
		return p.From
	}
	return p.Landings[len(p.Landings)-1]
}

// extend returns a new path one jump longer. Sibling branches share the
// receiver, so its slices are never appended to in place.
func (p CapturePath) extend(land, over Position) CapturePath {
	landings := make([]Position, len(p.Landings), len(p.Landings)+1)
	copy(landings, p.Landings)
	captured := make([]Position, len(p.Captured), len(p.Captured)+1)
	copy(captured, p.Captured)
	return CapturePath{
		From:     p.From,
		Landings: append(landings, land),
		Captured: append(captured, over),
		Promotes: p.Promotes,
	}
}

// squareSet is a bitset over the 100 board indices.
type squareSet [2]uint64

func (s squareSet) has(p Position) bool {
	i := p.index()
	return s[i/64]&(1<<uint(i%64)) != 0
}

func (s squareSet) with(p Position) squareSet {
	i := p.index()
	s[i/64] |= 1 << uint(i%64)
	return s
}

type squareState uint8

const (
	open squareState = iota
	friend
	foe
	// spent is a piece already jumped in this turn that still blocks.
	spent
)

type captureStep struct {
	over, land Position
}

type captureSearch struct {
	// board has the moving piece lifted off its origin square.
	board     Board
	color     Color
	startRank Rank
	rules     Rules
}

// CapturePaths enumerates every maximal capture path of the piece on from.
// It returns nil when the square is empty or the piece cannot capture.
func CapturePaths(b Board, from Position, rules Rules) []CapturePath {
	pc, ok := b.At(from)
	if !ok {
		return nil
	}
	s := captureSearch{board: b, color: pc.Color, startRank: pc.Rank, rules: rules}
	s.board.Remove(from)
	return s.search(CapturePath{From: from}, from, pc.Rank, squareSet{})
}

func (s *captureSearch) search(path CapturePath, at Position, rank Rank, taken squareSet) []CapturePath {
	steps := s.steps(at, rank, taken)
	if len(steps) == 0 {
		if len(path.Captured) == 0 {
			return nil
		}
		if s.startRank == Man && at.Row == s.color.promotionRow() {
			path.Promotes = true
		}
		return []CapturePath{path}
	}

	var out []CapturePath
	for _, st := range steps {
		next := path.extend(st.land, st.over)
		nextRank := rank
		if rank == Man && s.rules.PromoteMidCapture && st.land.Row == s.color.promotionRow() {
			nextRank = King
			next.Promotes = true
		}
		out = append(out, s.search(next, st.land, nextRank, taken.with(st.over))...)
	}
	return out
}

func (s *captureSearch) state(sq Position, taken squareSet) squareState {
	pc, ok := s.board.At(sq)
	switch {
	case !ok:
		return open
	case taken.has(sq):
		if s.rules.CapturedPiecesBlock {
			return spent
		}
		return open
	case pc.Color == s.color:
		return friend
	default:
		return foe
	}
}

func (s *captureSearch) steps(at Position, rank Rank, taken squareSet) []captureStep {
	var steps []captureStep
	for _, d := range diagonals {
		if rank == Man {
			over := at.add(d)
			land := over.add(d)
			if land.InBounds() && s.state(over, taken) == foe && s.state(land, taken) == open {
				steps = append(steps, captureStep{over: over, land: land})
			}
			continue
		}

		var over Position
		found := false
	scan:
		for sq := at.add(d); sq.InBounds(); sq = sq.add(d) {
			switch s.state(sq, taken) {
			case open:
				if found {
					steps = append(steps, captureStep{over: over, land: sq})
				}
			case foe:
				if found {
					break scan
				}
				over, found = sq, true
			default:
				break scan
			}
		}
	}
	return steps
}
