package model

import "github.com/benbeisheim/draughts-backend/internal/draughts"

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string         `json:"name"`
	Color draughts.Color `json:"color"`
}

type Players struct {
	Light ClientPlayer `json:"light"`
	Dark  ClientPlayer `json:"dark"`
}

func newPlayers() Players {
	return Players{
		Light: ClientPlayer{Color: draughts.Light},
		Dark:  ClientPlayer{Color: draughts.Dark},
	}
}

// seat reports the colour playerID is seated as.
func (p Players) seat(playerID string) (draughts.Color, bool) {
	switch {
	case playerID == "":
		return draughts.Light, false
	case p.Light.ID == playerID:
		return draughts.Light, true
	case p.Dark.ID == playerID:
		return draughts.Dark, true
	}
	return draughts.Light, false
}

func (p Players) full() bool {
	return p.Light.ID != "" && p.Dark.ID != ""
}
