package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, from model.Square) ([]model.Move, error) {
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, move model.SimpleMove) (model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, move)
}

func (gs *GameService) ListGames() ([]string, error) {
	return gs.gameManager.ListGames()
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn Conn) error {
	log.Debugf("registering client %s on game %s", clientID, gameID)
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn Conn) {
	log.Debugf("unregistering client %s from game %s", clientID, gameID)
	gs.gameManager.UnregisterConnection(gameID, clientID, conn)
}
