package model

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/benbeisheim/draughts-backend/internal/draughts"
	"github.com/benbeisheim/draughts-backend/internal/ws"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// WSMove is a move request as sent by clients.
type WSMove struct {
	From      draughts.Position `json:"from"`
	To        draughts.Position `json:"to"`
	PathIndex int               `json:"pathIndex"`
}

// GameState is what clients see of a game.
type GameState struct {
	ID string `json:"id"`
	draughts.Snapshot
	Players Players `json:"players"`
}

// Game is one draughts session: the engine, its two seats and its
// observers. The engine is only touched with mu held.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *draughts.Game
	players     Players
	connections *GameConnections
	log         *zap.SugaredLogger
}

func NewGame(id string, rules draughts.Rules, log *zap.SugaredLogger) (*Game, error) {
	engine, err := draughts.NewGame(rules)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:          id,
		engine:      engine,
		players:     newPlayers(),
		connections: NewGameConnections(),
		log:         log.With("game", id),
	}, nil
}

// AddPlayer seats playerID, light first. A player already seated gets
// their colour back.
func (g *Game) AddPlayer(playerID string) (draughts.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.players.seat(playerID); ok {
		return color, nil
	}
	if g.players.Light.ID == "" {
		g.players.Light = ClientPlayer{ID: playerID, Color: draughts.Light}
		g.log.Infow("player seated", "player", playerID, "color", draughts.Light)
		return draughts.Light, nil
	}
	if g.players.Dark.ID == "" {
		g.players.Dark = ClientPlayer{ID: playerID, Color: draughts.Dark}
		g.log.Infow("player seated", "player", playerID, "color", draughts.Dark)
		return draughts.Dark, nil
	}
	return draughts.Light, ErrGameFull
}

// LoadFEN replaces the position with the one described by fen, with the
// halfmove clock at zero.
func (g *Game) LoadFEN(fen string) error {
	b, toMove, err := draughts.ParseFEN(fen)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.engine.Load(b, toMove, 0); err != nil {
		return err
	}
	g.log.Infow("position loaded", "fen", fen)
	g.broadcastState(g.state())
	return nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	return GameState{
		ID:       g.ID,
		Snapshot: g.engine.State(),
		Players:  g.players,
	}
}

func (g *Game) ValidMoves() []draughts.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.ValidMoves()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.seat(playerID)
	return ok
}

// MakeMove plays move for playerID, who must hold the colour to move, and
// broadcasts the new state.
func (g *Game) MakeMove(playerID string, move WSMove) (draughts.Move, error) {
	g.mu.Lock()
	color, ok := g.players.seat(playerID)
	if !ok {
		g.mu.Unlock()
		return draughts.Move{}, ErrNotAPlayer
	}
	if g.engine.IsGameOver() {
		g.mu.Unlock()
		return draughts.Move{}, draughts.ErrGameOver
	}
	if color != g.engine.ToMove() {
		g.mu.Unlock()
		return draughts.Move{}, ErrNotYourTurn
	}

	played, err := g.engine.MakeMove(move.From, move.To, move.PathIndex)
	if err != nil {
		g.mu.Unlock()
		return draughts.Move{}, err
	}
	state := g.state()
	// Broadcast before unlocking so observers see states in move order.
	g.broadcastState(state)
	g.mu.Unlock()

	g.log.Infow("move played",
		"player", playerID,
		"color", color,
		"move", played.Notation(),
		"status", state.Status,
	)
	if state.IsOver {
		g.log.Infow("game over", "winner", state.Winner, "drawReason", state.DrawReason)
	}
	return played, nil
}

// Reset restarts the game from the opening position. Only seated players
// may reset.
func (g *Game) Reset(playerID string) (GameState, error) {
	g.mu.Lock()
	if _, ok := g.players.seat(playerID); !ok {
		g.mu.Unlock()
		return GameState{}, ErrNotAPlayer
	}
	g.engine.Reset()
	state := g.state()
	g.broadcastState(state)
	g.mu.Unlock()

	g.log.Infow("game reset", "player", playerID)
	return state, nil
}

// RegisterConnection attaches conn as playerID's observer and sends it the
// current state. Seated players may always connect; others only while a
// seat is free.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	// Held until the first state is sent, so no newer broadcast overtakes it.
	g.mu.Lock()
	defer g.mu.Unlock()

	_, seated := g.players.seat(playerID)
	if !seated && g.players.full() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				ErrAlreadyConnected.Error(),
			),
		)
		conn.Close()
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.log.Infow("connection registered", "player", playerID)

	g.send(playerID, ws.MessageTypeGameState, g.state())
	return nil
}

// UnregisterConnection drops conn if it is still playerID's current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		g.log.Infow("connection unregistered", "player", playerID)
	}
}

// SendError reports err to playerID's connection, if any.
func (g *Game) SendError(playerID string, err error) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if conn, ok := g.connections.connections[playerID]; ok {
		g.write(playerID, conn, ws.ErrorMessage(err))
	}
}

func (g *Game) send(playerID string, t ws.MessageType, payload any) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		g.log.Errorw("failed to marshal message", "type", t, "error", err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if conn, ok := g.connections.connections[playerID]; ok {
		g.write(playerID, conn, msg)
	}
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		g.log.Errorw("failed to marshal state", "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	// A websocket allows one writer at a time.
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		g.write(playerID, conn, msg)
	}
}

// write must be called with connections.mu held. Callers holding both locks
// take g.mu first. Connections that fail are dropped.
func (g *Game) write(playerID string, conn Conn, msg ws.Message) {
	if err := conn.WriteJSON(msg); err != nil {
		g.log.Warnw("failed to send to player, dropping connection", "player", playerID, "error", err)
		delete(g.connections.connections, playerID)
	}
}
