// Package store persists notification log rows.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"courtpub/internal/notification/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

type deliveryKey struct {
	subscription domain.SubscriptionID
	publication  domain.ArtefactID
}

// InMemoryStore keeps notification logs in a map keyed by id, with a second
// index enforcing one row per subscription and publication.
type InMemoryStore struct {
	mu         sync.RWMutex
	logs       map[domain.NotificationID]*models.NotificationLog
	deliveries map[deliveryKey]domain.NotificationID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		logs:       make(map[domain.NotificationID]*models.NotificationLog),
		deliveries: make(map[deliveryKey]domain.NotificationID),
	}
}

func (s *InMemoryStore) CreatePending(_ context.Context, log *models.NotificationLog) (*models.NotificationLog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := deliveryKey{log.SubscriptionID, log.PublicationID}
	if id, ok := s.deliveries[key]; ok {
		cp := *s.logs[id]
		return &cp, false, nil
	}
	if _, ok := s.logs[log.ID]; ok {
		return nil, false, fmt.Errorf("notification %s: %w", log.ID, sentinel.ErrConflict)
	}
	stored := *log
	s.logs[log.ID] = &stored
	s.deliveries[key] = log.ID
	cp := stored
	return &cp, true, nil
}

func (s *InMemoryStore) MarkSent(_ context.Context, id domain.NotificationID, gatewayID string, at time.Time) error {
	return s.transition(id, func(n *models.NotificationLog) error {
		return n.MarkSent(gatewayID, at)
	})
}

func (s *InMemoryStore) MarkFailed(_ context.Context, id domain.NotificationID, msg string, at time.Time) error {
	return s.transition(id, func(n *models.NotificationLog) error {
		return n.MarkFailed(msg, at)
	})
}

// transition applies fn to a copy and stores it only when fn succeeds.
func (s *InMemoryStore) transition(id domain.NotificationID, fn func(*models.NotificationLog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.logs[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	cp := *n
	if err := fn(&cp); err != nil {
		return fmt.Errorf("notification %s is %s: %w", id, n.Status, sentinel.ErrInvalidState)
	}
	s.logs[id] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.NotificationID) (*models.NotificationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.logs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *InMemoryStore) ListByPublication(_ context.Context, publicationID domain.ArtefactID) ([]*models.NotificationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.NotificationLog
	for _, n := range s.logs {
		if n.PublicationID == publicationID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) DeleteByUser(_ context.Context, userID domain.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, n := range s.logs {
		if n.UserID != userID {
			continue
		}
		delete(s.deliveries, deliveryKey{n.SubscriptionID, n.PublicationID})
		delete(s.logs, id)
		removed++
	}
	return removed, nil
}
