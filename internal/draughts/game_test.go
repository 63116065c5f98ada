package draughts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(DefaultRules())
	require.NoError(t, err)
	return g
}

func loadGame(t *testing.T, pieces map[Position]Piece, toMove Color, halfmoveClock int) *Game {
	t.Helper()
	g := newTestGame(t)
	require.NoError(t, g.Load(boardWith(t, pieces), toMove, halfmoveClock))
	return g
}

func play(t *testing.T, g *Game, from, to Position, pathIndex int) Move {
	t.Helper()
	m, err := g.MakeMove(from, to, pathIndex)
	require.NoError(t, err, "move %v-%v", from, to)
	return m
}

func TestNewGameState(t *testing.T) {
	g := newTestGame(t)
	s := g.State()

	assert.Equal(t, Light, s.ToMove)
	assert.False(t, s.IsOver)
	assert.Equal(t, InProgress, s.Status)
	assert.Equal(t, ResultNone, s.Winner)
	assert.Equal(t, 0, s.HalfmoveClock)
	assert.Equal(t, PieceCounts{Light: 20, Dark: 20}, s.PieceCounts)
	assert.Equal(t, PieceCounts{}, s.KingCounts)
	assert.Len(t, s.LegalMoves, 9)
	assert.Nil(t, s.LastMove)
	assert.Equal(t, NewBoard().Grid(), s.Board)
	assert.Equal(t, NoDraw, s.DrawReason)
}

func TestNewGameRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.HalfmoveLimit = 0
	_, err := NewGame(rules)
	assert.ErrorIs(t, err, ErrInvalidRules)

	rules = DefaultRules()
	rules.RepetitionLimit = 1
	_, err = NewGame(rules)
	assert.ErrorIs(t, err, ErrInvalidRules)
}

func TestFirstMoverRule(t *testing.T) {
	rules := DefaultRules()
	rules.FirstMover = Dark
	g, err := NewGame(rules)
	require.NoError(t, err)
	assert.Equal(t, Dark, g.ToMove())
	assert.Equal(t, Dark, g.Reset().ToMove)
}

func TestMakeMoveRejectsIllegalMoves(t *testing.T) {
	g := newTestGame(t)
	before := g.State()

	tests := []struct {
		name     string
		from, to Position
		index    int
		want     error
	}{
		{"backward", pos(6, 1), pos(7, 0), 0, ErrInvalidMove},
		{"two squares", pos(6, 1), pos(4, 3), 0, ErrInvalidMove},
		{"opponent piece", pos(3, 0), pos(4, 1), 0, ErrInvalidMove},
		{"empty square", pos(5, 0), pos(4, 1), 0, ErrInvalidMove},
		{"unknown path", pos(6, 1), pos(5, 0), 1, ErrInvalidMove},
		{"off board", pos(6, 1), pos(5, -1), 0, ErrOutOfBounds},
		{"row ten", pos(10, 1), pos(9, 0), 0, ErrOutOfBounds},
		{"light square", pos(6, 0), pos(5, 1), 0, ErrUnplayableSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.MakeMove(tt.from, tt.to, tt.index)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, g.State())
		})
	}
}

func TestOpeningExchangeForcesCaptures(t *testing.T) {
	g := newTestGame(t)
	play(t, g, pos(6, 3), pos(5, 4), 0)
	play(t, g, pos(3, 6), pos(4, 5), 0)
	assert.Equal(t, 2, g.HalfmoveClock())

	moves := g.ValidMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, pos(5, 4), moves[0].From)
	assert.Equal(t, pos(3, 6), moves[0].To)

	play(t, g, pos(5, 4), pos(3, 6), 0)
	assert.Equal(t, 0, g.HalfmoveClock())
	assert.Equal(t, PieceCounts{Light: 20, Dark: 19}, g.State().PieceCounts)

	moves = g.ValidMoves()
	require.Len(t, moves, 2)
	for _, m := range moves {
		assert.True(t, m.IsCapture())
		assert.Equal(t, []Position{pos(3, 6)}, m.Captured)
	}
	assert.Len(t, movesFrom(moves, pos(2, 5)), 1)
	assert.Len(t, movesFrom(moves, pos(2, 7)), 1)

	history := g.History()
	require.Len(t, history, 3)
	assert.Equal(t, Light, history[2].Mover)
	assert.Equal(t, "28x19", history[2].Move.Notation())
}

func TestHalfmoveClockDraw(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(9, 0): lightKing,
		pos(0, 1): darkKing,
	}, Light, 49)
	require.False(t, g.IsGameOver())

	play(t, g, pos(9, 0), pos(8, 1), 0)
	assert.Equal(t, 50, g.HalfmoveClock())
	assert.True(t, g.IsGameOver())
	assert.Equal(t, ResultDraw, g.Winner())
	assert.Equal(t, DrawByHalfmoveClock, g.DrawReason())
	assert.Empty(t, g.ValidMoves())
}

func TestCaptureResetsHalfmoveClock(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(9, 0): lightKing,
		pos(7, 2): darkMan,
		pos(0, 1): darkKing,
	}, Light, 49)

	m := play(t, g, pos(9, 0), pos(6, 3), 0)
	assert.True(t, m.IsCapture())
	assert.Equal(t, 0, g.HalfmoveClock())
	assert.False(t, g.IsGameOver())
	assert.Equal(t, ResultNone, g.Winner())
}

func TestPromotionResetsHalfmoveClock(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(1, 2): lightMan,
		pos(9, 0): darkKing,
	}, Light, 49)

	m := play(t, g, pos(1, 2), pos(0, 1), 0)
	assert.True(t, m.Promotes)
	assert.Equal(t, 0, g.HalfmoveClock())
	assert.False(t, g.IsGameOver())

	pc, ok := g.Board().At(pos(0, 1))
	require.True(t, ok)
	assert.Equal(t, lightKing, pc)
	assert.Equal(t, PieceCounts{Light: 1, Dark: 1}, g.State().KingCounts)
}

func TestThreefoldRepetition(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(9, 0): lightKing,
		pos(0, 1): darkKing,
	}, Light, 0)
	start := g.Board().Signature()

	cycle := [][2]Position{
		{pos(9, 0), pos(8, 1)},
		{pos(0, 1), pos(1, 0)},
		{pos(8, 1), pos(9, 0)},
		{pos(1, 0), pos(0, 1)},
	}
	for round := 0; round < 2; round++ {
		for i, step := range cycle {
			require.False(t, g.IsGameOver(), "round %d step %d", round, i)
			play(t, g, step[0], step[1], 0)
		}
	}

	assert.Equal(t, 3, g.draws.Repetitions(start, Light))
	assert.True(t, g.IsGameOver())
	assert.Equal(t, ResultDraw, g.Winner())
	assert.Equal(t, DrawByRepetition, g.DrawReason())
	assert.Equal(t, 8, g.HalfmoveClock())
}

func TestRepetitionWithOtherSideToMoveIsNotDraw(t *testing.T) {
	// The light king walks a three-move cycle and the dark king a two-move
	// one, so the starting arrangement comes back once with dark to move
	// and once with light to move.
	g := loadGame(t, map[Position]Piece{
		pos(9, 0): lightKing,
		pos(0, 1): darkKing,
	}, Light, 0)
	start := g.Board().Signature()

	lightCycle := [][2]Position{
		{pos(9, 0), pos(7, 2)},
		{pos(7, 2), pos(8, 1)},
		{pos(8, 1), pos(9, 0)},
	}
	darkCycle := [][2]Position{
		{pos(0, 1), pos(1, 0)},
		{pos(1, 0), pos(0, 1)},
	}
	for i := 0; i < 6; i++ {
		l := lightCycle[i%3]
		play(t, g, l[0], l[1], 0)
		d := darkCycle[i%2]
		play(t, g, d[0], d[1], 0)
	}

	assert.Equal(t, start, g.Board().Signature())
	assert.Equal(t, 2, g.draws.Repetitions(start, Light))
	assert.Equal(t, 1, g.draws.Repetitions(start, Dark))
	assert.False(t, g.IsGameOver())
}

func TestNoMovesLoses(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(1, 0): lightMan,
		pos(0, 1): darkMan,
	}, Light, 0)

	assert.True(t, g.IsGameOver())
	assert.Equal(t, Won, g.Status())
	assert.Equal(t, ResultDark, g.Winner())
	assert.Empty(t, g.ValidMoves())

	_, err := g.MakeMove(pos(1, 0), pos(0, 1), 0)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestNoPiecesLoses(t *testing.T) {
	g := loadGame(t, map[Position]Piece{pos(0, 1): darkMan}, Light, 0)
	assert.True(t, g.IsGameOver())
	assert.Equal(t, ResultDark, g.Winner())
}

func TestCapturingLastPieceWins(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(6, 3): lightMan,
		pos(5, 4): darkMan,
	}, Light, 0)

	play(t, g, pos(6, 3), pos(4, 5), 0)
	s := g.State()
	assert.True(t, s.IsOver)
	assert.Equal(t, ResultLight, s.Winner)
	assert.Equal(t, PieceCounts{Light: 1}, s.PieceCounts)
	require.NotNil(t, s.LastMove)
	assert.Equal(t, pos(4, 5), s.LastMove.To)

	_, err := g.MakeMove(pos(4, 5), pos(3, 4), 0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPathIndexSelectsCaptureRoute(t *testing.T) {
	g := loadGame(t, map[Position]Piece{
		pos(6, 3): lightMan,
		pos(5, 2): darkMan,
		pos(3, 2): darkMan,
		pos(3, 4): darkMan,
		pos(5, 4): darkMan,
		pos(0, 9): darkMan,
	}, Light, 0)

	moves := g.ValidMoves()
	require.Len(t, moves, 2)
	assert.Equal(t, 0, moves[0].PathIndex)
	assert.Equal(t, 1, moves[1].PathIndex)

	_, err := g.MakeMove(pos(6, 3), pos(6, 3), 2)
	require.ErrorIs(t, err, ErrInvalidMove)

	m := play(t, g, pos(6, 3), pos(6, 3), 1)
	assert.Equal(t, []Position{pos(4, 5), pos(2, 3), pos(4, 1), pos(6, 3)}, m.Landings)
	assert.Equal(t, PieceCounts{Light: 1, Dark: 1}, g.State().PieceCounts)
	assert.Equal(t, Dark, g.ToMove())
	assert.False(t, g.IsGameOver())
}

func TestResetIsIdempotent(t *testing.T) {
	g := newTestGame(t)
	fresh := g.State()

	play(t, g, pos(6, 3), pos(5, 4), 0)
	play(t, g, pos(3, 6), pos(4, 5), 0)
	assert.Equal(t, fresh, g.Reset())
	assert.Empty(t, g.History())
	assert.Equal(t, fresh, g.Reset())

	require.NoError(t, g.Load(boardWith(t, map[Position]Piece{pos(0, 1): darkMan}), Light, 30))
	require.True(t, g.IsGameOver())
	assert.Equal(t, fresh, g.Reset())
}

func TestLoadRejectsNegativeClock(t *testing.T) {
	g := newTestGame(t)
	err := g.Load(NewBoard(), Light, -1)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}
