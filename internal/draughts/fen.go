package draughts

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN reads a PDN position such as "W:W31-35,K46:B1,2,3". W is light
// and B is dark; the first field names the side to move.
func ParseFEN(s string) (Board, Color, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	fields := strings.Split(s, ":")
	toMove, err := fenColor(strings.TrimSpace(fields[0]))
	if err != nil {
		return Board{}, Light, err
	}

	b := EmptyBoard()
	for _, field := range fields[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		color, err := fenColor(field[:1])
		if err != nil {
			return Board{}, Light, err
		}
		for _, item := range strings.Split(field[1:], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			rank := Man
			if strings.HasPrefix(item, "K") {
				rank = King
				item = item[1:]
			}
			lo, hi, err := fenRange(item)
			if err != nil {
				return Board{}, Light, err
			}
			for n := lo; n <= hi; n++ {
				p, err := PositionFromSquare(n)
				if err != nil {
					return Board{}, Light, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
				}
				if !b.IsEmpty(p) {
					return Board{}, Light, fmt.Errorf("%w: square %d listed twice", ErrInvalidFEN, n)
				}
				b.cells[p.index()] = CellOf(Piece{Color: color, Rank: rank})
			}
		}
	}
	return b, toMove, nil
}

// FEN renders b with toMove in the form accepted by ParseFEN.
func (b Board) FEN(toMove Color) string {
	var sb strings.Builder
	sb.WriteString(fenLetter(toMove))
	for _, c := range []Color{Light, Dark} {
		sb.WriteString(":")
		sb.WriteString(fenLetter(c))
		var items []string
		for n := 1; n <= Size*Size/2; n++ {
			p, _ := PositionFromSquare(n)
			pc, ok := b.At(p)
			if !ok || pc.Color != c {
				continue
			}
			if pc.Rank == King {
				items = append(items, "K"+strconv.Itoa(n))
			} else {
				items = append(items, strconv.Itoa(n))
			}
		}
		sb.WriteString(strings.Join(items, ","))
	}
	return sb.String()
}

func fenColor(s string) (Color, error) {
	switch s {
	case "W":
		return Light, nil
	case "B":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: unknown side %q", ErrInvalidFEN, s)
}

func fenLetter(c Color) string {
	if c == Dark {
		return "B"
	}
	return "W"
}

func fenRange(item string) (int, int, error) {
	lo, hi, isRange := strings.Cut(item, "-")
	from, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad square %q", ErrInvalidFEN, item)
	}
	if !isRange {
		return from, from, nil
	}
	to, err := strconv.Atoi(hi)
	if err != nil || to < from {
		return 0, 0, fmt.Errorf("%w: bad range %q", ErrInvalidFEN, item)
	}
	return from, to, nil
}
