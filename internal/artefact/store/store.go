// Package store persists artefacts. Artefacts are written once and never
// updated; expiry is logical, by display window.
package store

import (
	"context"
	"sort"
	"time"

	"courtpub/internal/artefact/models"
	"courtpub/pkg/domain"
)

// Store is the artefact persistence port.
type Store interface {
	Create(ctx context.Context, a *models.Artefact) error
	FindByID(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error)
	Search(ctx context.Context, f Filter) ([]*models.Artefact, error)
}

// Filter narrows Search. Zero-valued fields do not filter.
type Filter struct {
	LocationID domain.LocationID
	ListTypeID domain.ListTypeID
	// ActiveAt keeps only artefacts whose display window contains it.
	ActiveAt time.Time
}

func (f Filter) matches(a *models.Artefact) bool {
	if f.LocationID != "" && a.LocationID != f.LocationID {
		return false
	}
	if f.ListTypeID != 0 && a.ListTypeID != f.ListTypeID {
		return false
	}
	if !f.ActiveAt.IsZero() && !a.InWindow(f.ActiveAt) {
		return false
	}
	return true
}

// sortNewestFirst orders by content date descending, then id for stability.
func sortNewestFirst(items []*models.Artefact) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].ContentDate.Equal(items[j].ContentDate) {
			return items[i].ContentDate.After(items[j].ContentDate)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}
