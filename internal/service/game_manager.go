// service/game_manager.go
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benbeisheim/draughts-backend/internal/draughts"
	"github.com/benbeisheim/draughts-backend/internal/model"
	"github.com/benbeisheim/draughts-backend/internal/ws"
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	rules            draughts.Rules
	interval         time.Duration
	log              *zap.SugaredLogger
	mu               sync.RWMutex
}

func NewGameManager(rules draughts.Rules, interval time.Duration, log *zap.SugaredLogger) *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		rules:            rules,
		interval:         interval,
		log:              log,
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context) {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.log.Info("matchmaking stopped")
			return
		case <-ticker.C:
			gm.matchPlayers()
		}
	}
}

// matchPlayers starts a game for every pair in the queue and notifies both
// players on their matchmaking channels. A pair is only matched once both
// players are listening; otherwise they go back to the queue until the next
// round.
func (gm *GameManager) matchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		_, listening1 := gm.matchingChannels[player1.ID]
		_, listening2 := gm.matchingChannels[player2.ID]
		if !listening1 || !listening2 {
			gm.requeue(player1, listening1, player2, listening2)
			return
		}

		gameID := uuid.New().String()
		game, err := gm.seatPair(gameID, player1, player2)
		if err != nil {
			gm.log.Errorw("failed to start matched game", "error", err)
			gm.queue.PushFront(player1, player2)
			return
		}
		gm.games[gameID] = game
		gm.log.Infow("match found", "game", gameID, "light", player1.ID, "dark", player2.ID)

		sentBoth := gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: draughts.Light})
		sentBoth = gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: draughts.Dark}) && sentBoth
		if !sentBoth {
			gm.log.Warnw("failed to notify all players of match", "game", gameID)
		}
	}
}

// requeue puts listening players back at the head of the queue and the
// others at its tail.
func (gm *GameManager) requeue(player1 model.Player, listening1 bool, player2 model.Player, listening2 bool) {
	var front []model.Player
	for _, p := range []struct {
		player    model.Player
		listening bool
	}{{player1, listening1}, {player2, listening2}} {
		if p.listening {
			front = append(front, p.player)
		} else if err := gm.queue.AddPlayer(p.player); err != nil {
			gm.log.Warnw("failed to requeue player", "player", p.player.ID, "error", err)
		}
	}
	gm.queue.PushFront(front...)
}

func (gm *GameManager) seatPair(gameID string, player1, player2 model.Player) (*model.Game, error) {
	game, err := model.NewGame(gameID, gm.rules, gm.log)
	if err != nil {
		return nil, err
	}
	if _, err := game.AddPlayer(player1.ID); err != nil {
		return nil, err
	}
	if _, err := game.AddPlayer(player2.ID); err != nil {
		return nil, err
	}
	return game, nil
}

// notifyMatch must be called with gm.mu held. The channel is closed after
// the event is delivered.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
	if err != nil {
		gm.log.Errorw("failed to marshal match event", "error", err)
		return false
	}
	data, err := json.Marshal(msg)
	if err != nil {
		gm.log.Errorw("failed to marshal match event", "error", err)
		return false
	}

	select {
	case ch <- string(data):
		delete(gm.matchingChannels, playerID)
		close(ch)
		return true
	default:
		gm.log.Warnw("matchmaking channel full", "player", playerID)
		return false
	}
}

// RegisterMatchmakingChannel installs ch as playerID's match notification
// channel, closing any previous one.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel removes ch if it is still playerID's
// channel. The caller owns ch and does not close it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

// CreateGame registers a new game. A non-empty fen replaces the opening
// position.
func (gm *GameManager) CreateGame(gameID string, fen string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	game, err := model.NewGame(gameID, gm.rules, gm.log)
	if err != nil {
		return err
	}
	if fen != "" {
		if err := game.LoadFEN(fen); err != nil {
			return err
		}
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (draughts.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return draughts.Light, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	gm.log.Infow("player queued", "player", playerID, "queueSize", gm.queue.Size())
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	if gm.queue.Remove(playerID) {
		gm.log.Infow("player left queue", "player", playerID)
	}
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) GetValidMoves(gameID string) ([]draughts.Move, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.ValidMoves(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (draughts.Move, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return draughts.Move{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) ResetGame(gameID string, playerID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Reset(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) SendError(gameID string, playerID string, err error) {
	game, getErr := gm.GetGame(gameID)
	if getErr != nil {
		return
	}
	game.SendError(playerID, err)
}
