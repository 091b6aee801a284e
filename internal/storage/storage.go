package storage

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var ErrNotFound = errors.New("game record not found")

// Store persists game records by game id.
type Store interface {
	Save(id string, rec model.GameRecord) error
	Load(id string) (model.GameRecord, error)
	Delete(id string) error
	List() ([]string, error)
	Close() error
}
