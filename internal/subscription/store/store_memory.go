package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

// InMemoryStore keeps subscriptions in maps. Users are registered with PutUser;
// subscribers without a user record are not returned as recipients, matching
// the inner join of the Postgres store.
type InMemoryStore struct {
	mu        sync.RWMutex
	locations map[domain.SubscriptionID]*models.LocationSubscription
	listTypes map[domain.SubscriptionID]*models.ListTypeSubscription
	users     map[domain.UserID]models.User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		locations: make(map[domain.SubscriptionID]*models.LocationSubscription),
		listTypes: make(map[domain.SubscriptionID]*models.ListTypeSubscription),
		users:     make(map[domain.UserID]models.User),
	}
}

// PutUser registers or replaces a user record.
func (s *InMemoryStore) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *InMemoryStore) CreateLocation(_ context.Context, sub *models.LocationSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[sub.ID]; ok {
		return fmt.Errorf("subscription %s: %w", sub.ID, sentinel.ErrConflict)
	}
	for _, existing := range s.locations {
		if existing.UserID == sub.UserID && existing.LocationID == sub.LocationID {
			return fmt.Errorf("location %s: %w", sub.LocationID, sentinel.ErrConflict)
		}
	}
	cp := *sub
	s.locations[sub.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindLocation(_ context.Context, id domain.SubscriptionID) (*models.LocationSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.locations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *InMemoryStore) ListLocationsByUser(_ context.Context, userID domain.UserID) ([]*models.LocationSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.LocationSubscription
	for _, sub := range s.locations {
		if sub.UserID == userID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

func (s *InMemoryStore) DeleteLocation(_ context.Context, id domain.SubscriptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locations[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.locations, id)
	return nil
}

func (s *InMemoryStore) UpsertListType(_ context.Context, sub *models.ListTypeSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.listTypes {
		if existing.UserID == sub.UserID && existing.ListTypeID == sub.ListTypeID {
			existing.Languages = slices.Clone(sub.Languages)
			existing.UpdatedAt = sub.UpdatedAt
			return nil
		}
	}
	s.listTypes[sub.ID] = cloneListType(sub)
	return nil
}

func (s *InMemoryStore) FindListType(_ context.Context, id domain.SubscriptionID) (*models.ListTypeSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.listTypes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneListType(sub), nil
}

func (s *InMemoryStore) ListListTypesByUser(_ context.Context, userID domain.UserID) ([]*models.ListTypeSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ListTypeSubscription
	for _, sub := range s.listTypes {
		if sub.UserID == userID {
			out = append(out, cloneListType(sub))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListTypeID < out[j].ListTypeID })
	return out, nil
}

func (s *InMemoryStore) DeleteListType(_ context.Context, id domain.SubscriptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listTypes[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.listTypes, id)
	return nil
}

func (s *InMemoryStore) DeleteByUser(_ context.Context, userID domain.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sub := range s.locations {
		if sub.UserID == userID {
			delete(s.locations, id)
			n++
		}
	}
	for id, sub := range s.listTypes {
		if sub.UserID == userID {
			delete(s.listTypes, id)
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) RecipientsByLocation(_ context.Context, locationID domain.LocationID) ([]models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Recipient
	for _, sub := range s.locations {
		if sub.LocationID != locationID {
			continue
		}
		if r, ok := s.recipient(sub.UserID, sub.ID); ok {
			out = append(out, r)
		}
	}
	sortRecipients(out)
	return out, nil
}

func (s *InMemoryStore) RecipientsByListType(_ context.Context, listTypeID domain.ListTypeID, languages []domain.Language) ([]models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Recipient
	for _, sub := range s.listTypes {
		if sub.ListTypeID != listTypeID || !overlaps(sub.Languages, languages) {
			continue
		}
		if r, ok := s.recipient(sub.UserID, sub.ID); ok {
			out = append(out, r)
		}
	}
	sortRecipients(out)
	return out, nil
}

func (s *InMemoryStore) recipient(userID domain.UserID, subID domain.SubscriptionID) (models.Recipient, bool) {
	u, ok := s.users[userID]
	if !ok {
		return models.Recipient{}, false
	}
	return models.Recipient{
		UserID:         u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		Surname:        u.Surname,
		SubscriptionID: subID,
	}, true
}

func overlaps(have, want []domain.Language) bool {
	for _, l := range want {
		if slices.Contains(have, l) {
			return true
		}
	}
	return false
}

func sortRecipients(rs []models.Recipient) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Email < rs[j].Email })
}

func cloneListType(sub *models.ListTypeSubscription) *models.ListTypeSubscription {
	cp := *sub
	cp.Languages = slices.Clone(sub.Languages)
	return &cp
}
