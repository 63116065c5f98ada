package draughts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func boardWith(t *testing.T, pieces map[Position]Piece) Board {
	t.Helper()
	b := EmptyBoard()
	for p, pc := range pieces {
		require.NoError(t, b.Place(p, pc))
	}
	return b
}

var (
	lightMan  = Piece{Color: Light, Rank: Man}
	darkMan   = Piece{Color: Dark, Rank: Man}
	lightKing = Piece{Color: Light, Rank: King}
	darkKing  = Piece{Color: Dark, Rank: King}
)

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()

	lightPieces, lightKings := b.Count(Light)
	darkPieces, darkKings := b.Count(Dark)
	assert.Equal(t, 20, lightPieces)
	assert.Equal(t, 20, darkPieces)
	assert.Zero(t, lightKings)
	assert.Zero(t, darkKings)

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := pos(row, col)
			pc, ok := b.At(p)
			if !p.Playable() {
				assert.False(t, ok, "unplayable square %v holds a piece", p)
				continue
			}
			switch {
			case row < 4:
				require.True(t, ok)
				assert.Equal(t, darkMan, pc)
			case row > 5:
				require.True(t, ok)
				assert.Equal(t, lightMan, pc)
			default:
				assert.False(t, ok)
			}
		}
	}
}

func TestSquareNumbering(t *testing.T) {
	tests := []struct {
		square int
		pos    Position
	}{
		{1, pos(0, 1)},
		{5, pos(0, 9)},
		{6, pos(1, 0)},
		{10, pos(1, 8)},
		{31, pos(6, 1)},
		{46, pos(9, 0)},
		{50, pos(9, 8)},
	}
	for _, tt := range tests {
		got, err := PositionFromSquare(tt.square)
		require.NoError(t, err)
		assert.Equal(t, tt.pos, got)
		assert.Equal(t, tt.square, tt.pos.Square())
	}

	_, err := PositionFromSquare(0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = PositionFromSquare(51)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestPlaceRejectsBadSquares(t *testing.T) {
	b := EmptyBoard()
	assert.ErrorIs(t, b.Place(pos(10, 1), lightMan), ErrOutOfBounds)
	assert.ErrorIs(t, b.Place(pos(-1, 0), lightMan), ErrOutOfBounds)
	assert.ErrorIs(t, b.Place(pos(0, 0), lightMan), ErrUnplayableSquare)
	assert.Equal(t, EmptyBoard(), b)
}

func TestBoardIsAValue(t *testing.T) {
	b := NewBoard()
	c := b
	c.Remove(pos(6, 1))

	_, ok := b.At(pos(6, 1))
	assert.True(t, ok)
	assert.NotEqual(t, b.Signature(), c.Signature())
}

func TestSignatureDependsOnlyOnPieces(t *testing.T) {
	a := boardWith(t, map[Position]Piece{pos(6, 1): lightMan, pos(3, 4): darkKing})

	b := EmptyBoard()
	require.NoError(t, b.Place(pos(3, 4), darkKing))
	require.NoError(t, b.Place(pos(6, 1), lightMan))
	assert.Equal(t, a.Signature(), b.Signature())

	require.NoError(t, b.Place(pos(3, 4), darkMan))
	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestGridCodes(t *testing.T) {
	b := boardWith(t, map[Position]Piece{
		pos(0, 1): lightMan,
		pos(0, 3): darkMan,
		pos(0, 5): lightKing,
		pos(0, 7): darkKing,
	})
	g := b.Grid()
	assert.Equal(t, [Size]Cell{0, 1, 0, 2, 0, 3, 0, 4, 0, 0}, g[0])
}

func TestColorText(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("dark")))
	assert.Equal(t, Dark, c)
	require.NoError(t, c.UnmarshalText([]byte("white")))
	assert.Equal(t, Light, c)
	assert.Error(t, c.UnmarshalText([]byte("green")))
	assert.Equal(t, Dark, Light.Opponent())
}
