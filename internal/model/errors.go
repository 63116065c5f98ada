package model

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrNotAPlayer       = errors.New("player is not seated in this game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
	ErrAlreadyConnected = errors.New("connection already exists")
	ErrAlreadyQueued    = errors.New("player already in queue")
)
