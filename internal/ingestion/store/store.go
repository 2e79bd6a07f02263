// Package store persists the append-only ingestion log.
package store

import (
	"context"

	"courtpub/internal/ingestion/models"
)

// Store appends ingestion log rows and reads the most recent ones back.
type Store interface {
	Append(ctx context.Context, entry models.IngestionLog) error
	ListRecent(ctx context.Context, limit int) ([]models.IngestionLog, error)
}
