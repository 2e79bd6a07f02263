package store

import (
	"context"
	"sync"

	"courtpub/internal/artefact/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	artefacts map[domain.ArtefactID]*models.Artefact
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artefacts: make(map[domain.ArtefactID]*models.Artefact)}
}

func (s *InMemoryStore) Create(_ context.Context, a *models.Artefact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.artefacts[a.ID]; exists {
		return sentinel.ErrConflict
	}
	s.artefacts[a.ID] = clone(a)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.ArtefactID) (*models.Artefact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artefacts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(a), nil
}

func (s *InMemoryStore) Search(_ context.Context, f Filter) ([]*models.Artefact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Artefact, 0)
	for _, a := range s.artefacts {
		if f.matches(a) {
			out = append(out, clone(a))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// clone keeps callers from mutating stored rows through shared pointers.
func clone(a *models.Artefact) *models.Artefact {
	c := *a
	if a.Payload != nil {
		c.Payload = append([]byte(nil), a.Payload...)
	}
	return &c
}
