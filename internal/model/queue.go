package model

import (
	"sync"
	"time"

	"github.com/benbeisheim/draughts-backend/internal/draughts"
)

type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

// MatchFoundEvent is sent to each matched player.
type MatchFoundEvent struct {
	GameID string         `json:"gameId"`
	Color  draughts.Color `json:"color"`
}

type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.contains(player.ID) {
		return ErrAlreadyQueued
	}

	q.players = append(q.players, QueuedPlayer{
		Player:   player,
		JoinedAt: time.Now(),
	})
	return nil
}

// PushFront puts players back at the head of the queue, in order, keeping
// their place ahead of later arrivals. Players already queued are skipped.
func (q *Queue) PushFront(players ...Player) {
	q.mu.Lock()
	defer q.mu.Unlock()

	front := make([]QueuedPlayer, 0, len(players))
	for _, p := range players {
		if q.contains(p.ID) {
			continue
		}
		front = append(front, QueuedPlayer{Player: p, JoinedAt: time.Now()})
	}
	q.players = append(front, q.players...)
}

// contains must be called with mu held.
func (q *Queue) contains(playerID string) bool {
	for _, p := range q.players {
		if p.Player.ID == playerID {
			return true
		}
	}
	return false
}

// Remove drops playerID from the queue and reports whether it was queued.
func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// GetNextPair pops the two players who have been waiting longest.
func (q *Queue) GetNextPair() (Player, Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return Player{}, Player{}, false
	}
	player1 := q.players[0].Player
	player2 := q.players[1].Player
	q.players = q.players[2:]
	return player1, player2, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
