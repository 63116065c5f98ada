package draughts

import "fmt"

// Apply returns the board after m is played on b. The receiver board is
// not modified. m must come from LegalMoves on the same board; anything
// else is a programming error and panics.
func Apply(b Board, m Move) Board {
	pc, ok := b.At(m.From)
	if !ok {
		panic(fmt.Sprintf("draughts: apply %s: no piece on %v", m.Notation(), m.From))
	}
	b.Remove(m.From)
	for _, sq := range m.Captured {
		if _, ok := b.At(sq); !ok {
			panic(fmt.Sprintf("draughts: apply %s: nothing to capture on %v", m.Notation(), sq))
		}
		b.Remove(sq)
	}
	if !b.IsEmpty(m.To) {
		panic(fmt.Sprintf("draughts: apply %s: destination %v is occupied", m.Notation(), m.To))
	}
	if m.Promotes {
		pc.Rank = King
	}
	b.cells[m.To.index()] = CellOf(pc)
	return b
}
