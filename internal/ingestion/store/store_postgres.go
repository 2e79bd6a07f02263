package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"courtpub/internal/ingestion/models"
	"courtpub/pkg/domain"
)

// PostgresStore persists the ingestion log in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry models.IngestionLog) error {
	var artefactID uuid.NullUUID
	if entry.ArtefactID != nil {
		artefactID = uuid.NullUUID{UUID: uuid.UUID(*entry.ArtefactID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingestion_logs (id, timestamp, source_system, court_id, status, error_message, artefact_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.Timestamp, entry.SourceSystem, entry.CourtID, string(entry.Status),
		sql.NullString{String: entry.ErrorMessage, Valid: entry.ErrorMessage != ""}, artefactID)
	if err != nil {
		return fmt.Errorf("append ingestion log: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.IngestionLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, source_system, court_id, status, error_message, artefact_id
		FROM ingestion_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingestion logs: %w", err)
	}
	defer rows.Close()

	out := make([]models.IngestionLog, 0)
	for rows.Next() {
		var (
			entry      models.IngestionLog
			status     string
			errMsg     sql.NullString
			artefactID uuid.NullUUID
		)
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.SourceSystem, &entry.CourtID, &status, &errMsg, &artefactID); err != nil {
			return nil, fmt.Errorf("scan ingestion log: %w", err)
		}
		entry.Status = models.Status(status)
		entry.ErrorMessage = errMsg.String
		if artefactID.Valid {
			id := domain.ArtefactID(artefactID.UUID)
			entry.ArtefactID = &id
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingestion logs: %w", err)
	}
	return out, nil
}
