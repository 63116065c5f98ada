package draughts

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns on an international draughts board.
const Size = 10

// Color identifies a side. Light starts on rows 6-9 and moves toward row 0.
type Color uint8

const (
	Light Color = iota
	Dark
)

func (c Color) Opponent() Color {
	if c == Light {
		return Dark
	}
	return Light
}

func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "light", "white", "w":
		*c = Light
	case "dark", "black", "b":
		*c = Dark
	default:
		return fmt.Errorf("unknown color %q", string(text))
	}
	return nil
}

// forward is the row delta of a man's non-capturing step.
func (c Color) forward() int {
	if c == Light {
		return -1
	}
	return 1
}

// promotionRow is the opponent's home rank.
func (c Color) promotionRow() int {
	if c == Light {
		return 0
	}
	return Size - 1
}

type Rank uint8

const (
	Man Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "man"
}

type Piece struct {
	Color Color `json:"color"`
	Rank  Rank  `json:"rank"`
}

// Cell is the code of one square as exposed to presentation layers:
// 0 empty, 1 light man, 2 dark man, 3 light king, 4 dark king.
type Cell uint8

const (
	Empty Cell = iota
	LightMan
	DarkMan
	LightKing
	DarkKing
)

func CellOf(p Piece) Cell {
	switch {
	case p.Color == Light && p.Rank == Man:
		return LightMan
	case p.Color == Dark && p.Rank == Man:
		return DarkMan
	case p.Color == Light:
		return LightKing
	default:
		return DarkKing
	}
}

func (c Cell) Piece() (Piece, bool) {
	switch c {
	case LightMan:
		return Piece{Color: Light, Rank: Man}, true
	case DarkMan:
		return Piece{Color: Dark, Rank: Man}, true
	case LightKing:
		return Piece{Color: Light, Rank: King}, true
	case DarkKing:
		return Piece{Color: Dark, Rank: King}, true
	}
	return Piece{}, false
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Playable reports whether p is a dark square. Pieces only ever stand on those.
func (p Position) Playable() bool {
	return p.InBounds() && (p.Row+p.Col)%2 == 1
}

// Validate rejects positions supplied from outside the engine.
func (p Position) Validate() error {
	if !p.InBounds() {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	if !p.Playable() {
		return fmt.Errorf("%w: (%d,%d)", ErrUnplayableSquare, p.Row, p.Col)
	}
	return nil
}

// Square returns the FMJD square number (1..50) of a playable position.
func (p Position) Square() int {
	return p.Row*Size/2 + p.Col/2 + 1
}

func PositionFromSquare(n int) (Position, error) {
	if n < 1 || n > Size*Size/2 {
		return Position{}, fmt.Errorf("%w: square %d", ErrOutOfBounds, n)
	}
	n--
	row := n / (Size / 2)
	col := (n % (Size / 2)) * 2
	if row%2 == 0 {
		col++
	}
	return Position{Row: row, Col: col}, nil
}

func (p Position) String() string {
	if p.Playable() {
		return fmt.Sprintf("%d", p.Square())
	}
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) add(d direction) Position {
	return Position{Row: p.Row + d.dr, Col: p.Col + d.dc}
}

func (p Position) index() int {
	return p.Row*Size + p.Col
}

type direction struct{ dr, dc int }

var diagonals = [4]direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Signature is a canonical encoding of every (position, color, rank) triple
// on a board. Two boards holding the same pieces on the same squares have
// equal signatures regardless of how they were reached.
type Signature [Size * Size]Cell

// Board is a value type: copying it yields an independent board.
type Board struct {
	cells [Size * Size]Cell
}

func EmptyBoard() Board {
	return Board{}
}

// NewBoard returns the opening layout: dark men on rows 0-3, light men on rows 6-9.
func NewBoard() Board {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := Position{Row: row, Col: col}
			if !p.Playable() {
				continue
			}
			switch {
			case row < 4:
				b.cells[p.index()] = DarkMan
			case row >= Size-4:
				b.cells[p.index()] = LightMan
			}
		}
	}
	return b
}

func (b Board) At(p Position) (Piece, bool) {
	if !p.InBounds() {
		return Piece{}, false
	}
	return b.cells[p.index()].Piece()
}

func (b Board) Cell(p Position) Cell {
	if !p.InBounds() {
		return Empty
	}
	return b.cells[p.index()]
}

func (b Board) IsEmpty(p Position) bool {
	return p.InBounds() && b.cells[p.index()] == Empty
}

// Place puts pc on p, replacing whatever was there.
func (b *Board) Place(p Position, pc Piece) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.cells[p.index()] = CellOf(pc)
	return nil
}

func (b *Board) Remove(p Position) {
	if p.InBounds() {
		b.cells[p.index()] = Empty
	}
}

// Grid returns the board as rows of cell codes.
func (b Board) Grid() [Size][Size]Cell {
	var g [Size][Size]Cell
	for i, c := range b.cells {
		g[i/Size][i%Size] = c
	}
	return g
}

func (b Board) Signature() Signature {
	return Signature(b.cells)
}

// Count returns how many pieces of color c, and how many of those are kings.
func (b Board) Count(c Color) (pieces, kings int) {
	for _, cell := range b.cells {
		pc, ok := cell.Piece()
		if !ok || pc.Color != c {
			continue
		}
		pieces++
		if pc.Rank == King {
			kings++
		}
	}
	return pieces, kings
}

// Positions lists the squares holding pieces of color c in row-major order.
func (b Board) Positions(c Color) []Position {
	var out []Position
	for i, cell := range b.cells {
		pc, ok := cell.Piece()
		if ok && pc.Color == c {
			out = append(out, Position{Row: i / Size, Col: i % Size})
		}
	}
	return out
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b.cells[row*Size+col] {
			case LightMan:
				sb.WriteByte('w')
			case DarkMan:
				sb.WriteByte('b')
			case LightKing:
				sb.WriteByte('W')
			case DarkKing:
				sb.WriteByte('B')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
