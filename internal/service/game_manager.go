// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// session is one live game and the clients watching it.
type session struct {
	mu          sync.Mutex
	game        *model.Game
	connections map[string]Conn // clientID -> connection
}

func newSession(game *model.Game) *session {
	return &session{
		game:        game,
		connections: make(map[string]Conn),
	}
}

type GameManager struct {
	games map[string]*session
	store storage.Store
	mu    sync.RWMutex
}

func NewGameManager(store storage.Store) *GameManager {
	return &GameManager{
		games: make(map[string]*session),
		store: store,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	if _, err := gm.store.Load(gameID); err == nil {
		return ErrGameExists
	}

	game := model.NewGame()
	if err := gm.store.Save(gameID, game.Record()); err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	gm.games[gameID] = newSession(game)
	log.Infof("created game %s", gameID)
	return nil
}

// getSession returns the live session, restoring it from the store the
// first time a persisted game is touched.
func (gm *GameManager) getSession(gameID string) (*session, error) {
	gm.mu.RLock()
	s, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return s, nil
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if s, exists := gm.games[gameID]; exists {
		return s, nil
	}

	rec, err := gm.store.Load(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	game, err := model.RestoreGame(rec)
	if err != nil {
		log.Errorf("stored game %s is corrupt: %v", gameID, err)
		return nil, fmt.Errorf("restore game %s: %w", gameID, err)
	}
	s = newSession(game)
	gm.games[gameID] = s
	log.Infof("restored game %s from storage", gameID)
	return s, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	s, err := gm.getSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State(gameID), nil
}

func (gm *GameManager) LegalMoves(gameID string, from model.Square) ([]model.Move, error) {
	s, err := gm.getSession(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	moves, err := s.game.LegalMovesFrom(from)
	if err != nil {
		log.Errorf("game %s: legal moves from %s: %v", gameID, from, err)
		return nil, err
	}
	if moves == nil {
		moves = make([]model.Move, 0)
	}
	return moves, nil
}

// MakeMove plays move, persists the game and pushes the new state to every
// connected client.
func (gm *GameManager) MakeMove(gameID string, move model.SimpleMove) (model.GameState, error) {
	s, err := gm.getSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ply, err := s.game.MakeMove(move.From, move.To)
	if err != nil {
		if errors.Is(err, model.ErrKingNotFound) {
			log.Errorf("game %s: board integrity fault on %s-%s: %v", gameID, move.From, move.To, err)
		}
		return model.GameState{}, err
	}
	log.Debugf("game %s: %s played %s", gameID, ply.Piece.Color, ply.Move())

	if err := gm.store.Save(gameID, s.game.Record()); err != nil {
		// the in-memory game stays canonical; the next move saves again
		log.Warnf("game %s: save failed: %v", gameID, err)
	}

	state := s.game.State(gameID)
	if state.Status.IsOver() {
		log.Infof("game %s finished: %s", gameID, state.Status.Outcome)
	}
	s.broadcast(state)
	return state, nil
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn Conn) error {
	s, err := gm.getSession(gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, exists := s.connections[clientID]; exists && old != conn {
		log.Infof("game %s: replacing connection for client %s", gameID, clientID)
	}
	s.connections[clientID] = conn
	// Send initial state...
	s.sendState(clientID, conn, s.game.State(gameID))
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string, conn Conn) {
	gm.mu.RLock()
	s, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Only unregister if this is still the current connection
	if current, ok := s.connections[clientID]; ok && current == conn {
		delete(s.connections, clientID)
	}
}

func (gm *GameManager) ListGames() ([]string, error) {
	return gm.store.List()
}

// broadcast must be called with s.mu held.
func (s *session) broadcast(state model.GameState) {
	for clientID, conn := range s.connections {
		s.sendState(clientID, conn, state)
	}
}

func (s *session) sendState(clientID string, conn Conn, state model.GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("marshal state: %v", err)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warnf("send state to client %s: %v", clientID, err)
		delete(s.connections, clientID)
	}
}
