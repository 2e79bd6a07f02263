package store

import (
	"context"
	"sync"

	"courtpub/internal/ingestion/models"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	entries []models.IngestionLog
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry models.IngestionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// ListRecent returns up to limit rows, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]models.IngestionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.IngestionLog, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
