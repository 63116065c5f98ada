package draughts

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrGameOver         = fmt.Errorf("%w: game is over", ErrInvalidMove)
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrUnplayableSquare = errors.New("position is not a playable square")
	ErrInvalidFEN       = errors.New("invalid FEN")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidRules     = errors.New("invalid rules")
)
