package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"courtpub/internal/artefact/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

var artefactColumns = []string{
	"id", "location_id", "list_type_id", "content_date", "sensitivity", "language",
	"display_from", "display_to", "provenance", "is_flat_file", "no_match", "payload", "created_at",
}

// PostgresStore persists artefacts in PostgreSQL.
type PostgresStore struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

// NewPostgres constructs a PostgreSQL-backed artefact store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *PostgresStore) Create(ctx context.Context, a *models.Artefact) error {
	query, args, err := s.psql.Insert("artefacts").
		Columns(artefactColumns...).
		Values(
			uuid.UUID(a.ID), string(a.LocationID), int(a.ListTypeID), a.ContentDate,
			string(a.Sensitivity), string(a.Language), a.DisplayFrom, a.DisplayTo,
			string(a.Provenance), a.IsFlatFile, a.NoMatch, a.Payload, a.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert artefact: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert artefact: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error) {
	query, args, err := s.psql.Select(artefactColumns...).
		From("artefacts").
		Where(sq.Eq{"id": uuid.UUID(id)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find artefact: %w", err)
	}
	a, err := scanArtefact(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find artefact by id: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) Search(ctx context.Context, f Filter) ([]*models.Artefact, error) {
	builder := s.psql.Select(artefactColumns...).
		From("artefacts").
		OrderBy("content_date DESC", "id ASC")
	if f.LocationID != "" {
		builder = builder.Where(sq.Eq{"location_id": string(f.LocationID)})
	}
	if f.ListTypeID != 0 {
		builder = builder.Where(sq.Eq{"list_type_id": int(f.ListTypeID)})
	}
	if !f.ActiveAt.IsZero() {
		builder = builder.Where(sq.And{
			sq.LtOrEq{"display_from": f.ActiveAt},
			sq.GtOrEq{"display_to": f.ActiveAt},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search artefacts: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search artefacts: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Artefact, 0)
	for rows.Next() {
		a, err := scanArtefact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artefact: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artefacts: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtefact(row rowScanner) (*models.Artefact, error) {
	var (
		a           models.Artefact
		id          uuid.UUID
		locationID  string
		listTypeID  int
		sensitivity string
		language    string
		provenance  string
	)
	if err := row.Scan(
		&id, &locationID, &listTypeID, &a.ContentDate, &sensitivity, &language,
		&a.DisplayFrom, &a.DisplayTo, &provenance, &a.IsFlatFile, &a.NoMatch, &a.Payload, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.ID = domain.ArtefactID(id)
	a.LocationID = domain.LocationID(locationID)
	a.ListTypeID = domain.ListTypeID(listTypeID)
	a.Sensitivity = domain.Sensitivity(sensitivity)
	a.Language = domain.Language(language)
	a.Provenance = domain.Provenance(provenance)
	return &a, nil
}
