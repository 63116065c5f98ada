package draughts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFENOpening(t *testing.T) {
	b, toMove, err := ParseFEN("W:W31-50:B1-20")
	require.NoError(t, err)
	assert.Equal(t, Light, toMove)
	assert.Equal(t, NewBoard(), b)
}

func TestFENRoundTrip(t *testing.T) {
	b := boardWith(t, map[Position]Piece{
		pos(9, 0): lightKing,
		pos(6, 1): lightMan,
		pos(0, 9): darkMan,
		pos(1, 8): darkKing,
	})
	fen := b.FEN(Dark)
	assert.Equal(t, "B:W31,K46:B5,K10", fen)

	parsed, toMove, err := ParseFEN(fen)
	require.NoError(t, err)
	assert.Equal(t, Dark, toMove)
	assert.Equal(t, b, parsed)
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"bad side", "X:W31:B1"},
		{"bad piece colour", "W:W31:R1"},
		{"duplicate square", "W:W31,31:B1"},
		{"square shared", "W:W31:B31"},
		{"square too high", "W:W51:B1"},
		{"not a number", "W:Wab:B1"},
		{"reversed range", "W:W40-31:B1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFEN(tt.fen)
			assert.ErrorIs(t, err, ErrInvalidFEN)
		})
	}
}

func TestFENEmptySides(t *testing.T) {
	b, toMove, err := ParseFEN("B:W:B.")
	require.NoError(t, err)
	assert.Equal(t, Dark, toMove)
	assert.Equal(t, EmptyBoard(), b)
	assert.Equal(t, "B:W:B", b.FEN(Dark))
}
