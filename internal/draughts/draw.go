package draughts

type DrawReason string

const (
	NoDraw              DrawReason = ""
	DrawByHalfmoveClock DrawReason = "halfmove"
	DrawByRepetition    DrawReason = "repetition"
)

// PositionKey identifies a position for repetition purposes. The same
// pieces with a different side to move form a different key.
type PositionKey struct {
	Board  Signature
	ToMove Color
}

type Observation struct {
	HalfmoveClock   int
	RepetitionCount int
}

// DrawDetector tracks the halfmove clock and the positions seen so far.
type DrawDetector struct {
	halfmoveLimit   int
	repetitionLimit int

	clock     int
	history   []PositionKey
	seen      map[PositionKey]int
	maxRepeat int
}

func NewDrawDetector(halfmoveLimit, repetitionLimit int) *DrawDetector {
	return &DrawDetector{
		halfmoveLimit:   halfmoveLimit,
		repetitionLimit: repetitionLimit,
		seen:            make(map[PositionKey]int),
	}
}

// Reset clears the history and seeds it with the starting position.
func (d *DrawDetector) Reset(sig Signature, toMove Color, halfmoveClock int) {
	d.clock = halfmoveClock
	d.history = d.history[:0]
	d.seen = make(map[PositionKey]int)
	d.maxRepeat = 0
	d.record(PositionKey{Board: sig, ToMove: toMove})
}

// Observe records the position reached after a half-move.
func (d *DrawDetector) Observe(sig Signature, toMove Color, captured, promoted bool) Observation {
	if captured || promoted {
		d.clock = 0
	} else {
		d.clock++
	}
	n := d.record(PositionKey{Board: sig, ToMove: toMove})
	return Observation{HalfmoveClock: d.clock, RepetitionCount: n}
}

func (d *DrawDetector) record(key PositionKey) int {
	d.history = append(d.history, key)
	d.seen[key]++
	n := d.seen[key]
	if n > d.maxRepeat {
		d.maxRepeat = n
	}
	return n
}

func (d *DrawDetector) HalfmoveClock() int {
	return d.clock
}

func (d *DrawDetector) Repetitions(sig Signature, toMove Color) int {
	return d.seen[PositionKey{Board: sig, ToMove: toMove}]
}

func (d *DrawDetector) History() []PositionKey {
	out := make([]PositionKey, len(d.history))
	copy(out, d.history)
	return out
}

func (d *DrawDetector) Reason() DrawReason {
	switch {
	case d.clock >= d.halfmoveLimit:
		return DrawByHalfmoveClock
	case d.maxRepeat >= d.repetitionLimit:
		return DrawByRepetition
	}
	return NoDraw
}

func (d *DrawDetector) IsDraw() bool {
	return d.Reason() != NoDraw
}
