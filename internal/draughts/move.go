package draughts

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Move is one legal move. Simple moves have no captures and a single landing.
type Move struct {
	From     Position   `json:"from"`
	To       Position   `json:"to"`
	Landings []Position `json:"path"`
	Captured []Position `json:"captured"`
	Promotes bool       `json:"promotes"`
	// PathIndex tells apart moves sharing From and To. It counts from 0 in
	// generation order within each (From, To) pair.
	PathIndex int `json:"pathIndex"`
}

func (m Move) CapturedCount() int {
	return len(m.Captured)
}

func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

func (m Move) Matches(from, to Position, pathIndex int) bool {
	return m.From == from && m.To == to && m.PathIndex == pathIndex
}

// Notation renders the move with FMJD square numbers: "32-28" or "28x19x10".
func (m Move) Notation() string {
	if !m.IsCapture() {
		return m.From.String() + "-" + m.To.String()
	}
	parts := make([]string, 0, len(m.Landings)+1)
	parts = append(parts, strconv.Itoa(m.From.Square()))
	for _, p := range m.Landings {
		parts = append(parts, strconv.Itoa(p.Square()))
	}
	return strings.Join(parts, "x")
}

func (m Move) MarshalJSON() ([]byte, error) {
	type plain Move
	return json.Marshal(struct {
		plain
		CapturedCount int    `json:"capturedCount"`
		Notation      string `json:"notation"`
	}{plain(m), m.CapturedCount(), m.Notation()})
}

func moveFromPath(p CapturePath) Move {
	return Move{
		From:     p.From,
		To:       p.To(),
		Landings: p.Landings,
		Captured: p.Captured,
		Promotes: p.Promotes,
	}
}
