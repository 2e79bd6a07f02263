// Package events carries artefact-published notifications from ingestion to
// the notification worker, in process or over Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courtpub/pkg/domain"
)

// ArtefactPublished is emitted once an artefact with a matched location has
// been stored.
type ArtefactPublished struct {
	ArtefactID  domain.ArtefactID `json:"artefact_id"`
	LocationID  domain.LocationID `json:"location_id"`
	ListTypeID  domain.ListTypeID `json:"list_type_id"`
	Language    domain.Language   `json:"language"`
	PublishedAt time.Time         `json:"published_at"`
}

// artefactPublishedWire keeps the UUID as a string on the wire.
type artefactPublishedWire struct {
	ArtefactID  string    `json:"artefact_id"`
	LocationID  string    `json:"location_id"`
	ListTypeID  int       `json:"list_type_id"`
	Language    string    `json:"language"`
	PublishedAt time.Time `json:"published_at"`
}

func (e ArtefactPublished) MarshalJSON() ([]byte, error) {
	return json.Marshal(artefactPublishedWire{
		ArtefactID:  e.ArtefactID.String(),
		LocationID:  string(e.LocationID),
		ListTypeID:  int(e.ListTypeID),
		Language:    string(e.Language),
		PublishedAt: e.PublishedAt,
	})
}

func (e *ArtefactPublished) UnmarshalJSON(data []byte) error {
	var w artefactPublishedWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id, err := domain.ParseArtefactID(w.ArtefactID)
	if err != nil {
		return fmt.Errorf("artefact_id: %w", err)
	}
	*e = ArtefactPublished{
		ArtefactID:  id,
		LocationID:  domain.LocationID(w.LocationID),
		ListTypeID:  domain.ListTypeID(w.ListTypeID),
		Language:    domain.Language(w.Language),
		PublishedAt: w.PublishedAt,
	}
	return nil
}

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, evt ArtefactPublished) error
}

// Handler processes one delivered event.
type Handler func(ctx context.Context, evt ArtefactPublished) error

// Source delivers events to handle until ctx is cancelled.
type Source interface {
	Run(ctx context.Context, handle Handler) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ArtefactPublished) error { return nil }
