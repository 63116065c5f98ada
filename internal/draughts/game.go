package draughts

import "fmt"

type Status uint8

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "draw"
	}
	return "inProgress"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome reported by Winner.
type Result uint8

const (
	ResultNone Result = iota
	ResultLight
	ResultDark
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultLight:
		return "light"
	case ResultDark:
		return "dark"
	case ResultDraw:
		return "draw"
	}
	return "none"
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func winnerOf(c Color) Result {
	if c == Light {
		return ResultLight
	}
	return ResultDark
}

// Record is one played half-move.
type Record struct {
	Mover Color `json:"mover"`
	Move  Move  `json:"move"`
}

type PieceCounts struct {
	Light int `json:"light"`
	Dark  int `json:"dark"`
}

// Snapshot is a read-only view of a game, safe to hand to other goroutines.
type Snapshot struct {
	Board         [Size][Size]Cell `json:"board"`
	FEN           string           `json:"fen"`
	ToMove        Color            `json:"toMove"`
	LegalMoves    []Move           `json:"legalMoves"`
	Status        Status           `json:"status"`
	IsOver        bool             `json:"isOver"`
	Winner        Result           `json:"winner"`
	DrawReason    DrawReason       `json:"drawReason"`
	HalfmoveClock int              `json:"halfmoveClock"`
	PieceCounts   PieceCounts      `json:"pieceCounts"`
	KingCounts    PieceCounts      `json:"kingCounts"`
	LastMove      *Move            `json:"lastMove"`
}

// Game owns a board, the side to move and the draw bookkeeping. It does no
// locking: one goroutine at a time.
type Game struct {
	rules   Rules
	board   Board
	toMove  Color
	draws   *DrawDetector
	status  Status
	result  Result
	legal   []Move
	history []Record
}

func NewGame(rules Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		rules: rules,
		draws: NewDrawDetector(rules.HalfmoveLimit, rules.RepetitionLimit),
	}
	g.Reset()
	return g, nil
}

// Reset returns the game to the opening position.
func (g *Game) Reset() Snapshot {
	g.setPosition(NewBoard(), g.rules.FirstMover, 0)
	return g.State()
}

// Load installs an arbitrary position. The repetition history restarts
// from it.
func (g *Game) Load(b Board, toMove Color, halfmoveClock int) error {
	if toMove != Light && toMove != Dark {
		return fmt.Errorf("%w: unknown side to move %v", ErrInvalidPosition, toMove)
	}
	if halfmoveClock < 0 {
		return fmt.Errorf("%w: negative halfmove clock %d", ErrInvalidPosition, halfmoveClock)
	}
	g.setPosition(b, toMove, halfmoveClock)
	return nil
}

func (g *Game) setPosition(b Board, toMove Color, halfmoveClock int) {
	g.board = b
	g.toMove = toMove
	g.history = nil
	g.draws.Reset(b.Signature(), toMove, halfmoveClock)
	g.evaluate()
}

// MakeMove plays the legal move identified by from, to and pathIndex.
func (g *Game) MakeMove(from, to Position, pathIndex int) (Move, error) {
	if g.status != InProgress {
		return Move{}, ErrGameOver
	}
	if err := from.Validate(); err != nil {
		return Move{}, err
	}
	if err := to.Validate(); err != nil {
		return Move{}, err
	}

	var move Move
	found := false
	for _, m := range g.legal {
		if m.Matches(from, to, pathIndex) {
			move, found = m, true
			break
		}
	}
	if !found {
		return Move{}, fmt.Errorf("%w: %v to %v (path %d) is not legal for %v", ErrInvalidMove, from, to, pathIndex, g.toMove)
	}

	g.board = Apply(g.board, move)
	g.history = append(g.history, Record{Mover: g.toMove, Move: move})
	g.toMove = g.toMove.Opponent()
	g.draws.Observe(g.board.Signature(), g.toMove, move.IsCapture(), move.Promotes)
	g.evaluate()
	return move, nil
}

func (g *Game) evaluate() {
	g.legal = LegalMoves(g.board, g.toMove, g.rules)
	pieces, _ := g.board.Count(g.toMove)
	switch {
	case pieces == 0 || len(g.legal) == 0:
		g.status, g.result = Won, winnerOf(g.toMove.Opponent())
	case g.draws.IsDraw():
		g.status, g.result = Drawn, ResultDraw
	default:
		g.status, g.result = InProgress, ResultNone
	}
	if g.status != InProgress {
		g.legal = nil
	}
}

// ValidMoves lists the legal moves of the side to move. It is empty once
// the game is over.
func (g *Game) ValidMoves() []Move {
	out := make([]Move, len(g.legal))
	copy(out, g.legal)
	return out
}

func (g *Game) IsGameOver() bool {
	return g.status != InProgress
}

func (g *Game) Winner() Result {
	return g.result
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Board() Board {
	return g.board
}

func (g *Game) ToMove() Color {
	return g.toMove
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) HalfmoveClock() int {
	return g.draws.HalfmoveClock()
}

func (g *Game) DrawReason() DrawReason {
	if g.status != Drawn {
		return NoDraw
	}
	return g.draws.Reason()
}

func (g *Game) History() []Record {
	out := make([]Record, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) State() Snapshot {
	lightPieces, lightKings := g.board.Count(Light)
	darkPieces, darkKings := g.board.Count(Dark)
	s := Snapshot{
		Board:         g.board.Grid(),
		FEN:           g.board.FEN(g.toMove),
		ToMove:        g.toMove,
		LegalMoves:    g.ValidMoves(),
		Status:        g.status,
		IsOver:        g.IsGameOver(),
		Winner:        g.result,
		DrawReason:    g.DrawReason(),
		HalfmoveClock: g.draws.HalfmoveClock(),
		PieceCounts:   PieceCounts{Light: lightPieces, Dark: darkPieces},
		KingCounts:    PieceCounts{Light: lightKings, Dark: darkKings},
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1].Move
		s.LastMove = &last
	}
	return s
}
