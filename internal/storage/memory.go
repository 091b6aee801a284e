package storage

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// MemoryStore keeps encoded records in a map. Records are stored as JSON so
// a loaded record never aliases the caller's board.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Save(id string, rec model.GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = data
	return nil
}

func (s *MemoryStore) Load(id string) (model.GameRecord, error) {
	s.mu.RLock()
	data, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return model.GameRecord{}, ErrNotFound
	}
	var rec model.GameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.GameRecord{}, err
	}
	return rec, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
