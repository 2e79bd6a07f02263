package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
	"courtpub/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists subscriptions in PostgreSQL. Recipient lookups join
// the account service's users table.
type PostgresStore struct {
	db   tx.Execer
	inTx bool
}

// NewPostgres constructs a store that runs each statement on its own.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx constructs a store bound to an open transaction. Writes run
// under a savepoint so one failed row does not abort the transaction.
func NewPostgresTx(t *sql.Tx) *PostgresStore {
	return &PostgresStore{db: t, inTx: true}
}

func (s *PostgresStore) write(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !s.inTx {
		return s.db.ExecContext(ctx, query, args...)
	}
	if _, err := s.db.ExecContext(ctx, "SAVEPOINT subscription_write"); err != nil {
		return nil, fmt.Errorf("savepoint: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if _, rbErr := s.db.ExecContext(ctx, "ROLLBACK TO SAVEPOINT subscription_write"); rbErr != nil {
			return nil, errors.Join(err, fmt.Errorf("rollback to savepoint: %w", rbErr))
		}
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, "RELEASE SAVEPOINT subscription_write"); err != nil {
		return nil, fmt.Errorf("release savepoint: %w", err)
	}
	return res, nil
}

func (s *PostgresStore) CreateLocation(ctx context.Context, sub *models.LocationSubscription) error {
	res, err := s.write(ctx, `
		INSERT INTO subscriptions (id, user_id, location_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, location_id) DO NOTHING
	`, uuid.UUID(sub.ID), uuid.UUID(sub.UserID), string(sub.LocationID), sub.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("location %s: %w", sub.LocationID, sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) FindLocation(ctx context.Context, id domain.SubscriptionID) (*models.LocationSubscription, error) {
	sub, err := scanLocation(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, location_id, created_at
		FROM subscriptions
		WHERE id = $1
	`, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) ListLocationsByUser(ctx context.Context, userID domain.UserID) ([]*models.LocationSubscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, location_id, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at, location_id
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*models.LocationSubscription
	for rows.Next() {
		sub, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteLocation(ctx context.Context, id domain.SubscriptionID) error {
	return s.deleteOne(ctx, "subscriptions", id)
}

func (s *PostgresStore) UpsertListType(ctx context.Context, sub *models.ListTypeSubscription) error {
	_, err := s.write(ctx, `
		INSERT INTO subscription_list_types (id, user_id, list_type_id, languages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, list_type_id)
		DO UPDATE SET languages = EXCLUDED.languages, updated_at = EXCLUDED.updated_at
	`, uuid.UUID(sub.ID), uuid.UUID(sub.UserID), int(sub.ListTypeID), pq.Array(languageStrings(sub.Languages)),
		sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert list type subscription: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindListType(ctx context.Context, id domain.SubscriptionID) (*models.ListTypeSubscription, error) {
	sub, err := scanListType(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, list_type_id, languages, created_at, updated_at
		FROM subscription_list_types
		WHERE id = $1
	`, uuid.UUID(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find list type subscription: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) ListListTypesByUser(ctx context.Context, userID domain.UserID) ([]*models.ListTypeSubscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, list_type_id, languages, created_at, updated_at
		FROM subscription_list_types
		WHERE user_id = $1
		ORDER BY list_type_id
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list list type subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*models.ListTypeSubscription
	for rows.Next() {
		sub, err := scanListType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list type subscription: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list type subscriptions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteListType(ctx context.Context, id domain.SubscriptionID) error {
	return s.deleteOne(ctx, "subscription_list_types", id)
}

func (s *PostgresStore) DeleteByUser(ctx context.Context, userID domain.UserID) (int, error) {
	total := 0
	for _, table := range []string{"subscriptions", "subscription_list_types"} {
		res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = $1", uuid.UUID(userID))
		if err != nil {
			return 0, fmt.Errorf("delete %s by user: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("delete %s by user: %w", table, err)
		}
		total += int(n)
	}
	return total, nil
}

func (s *PostgresStore) RecipientsByLocation(ctx context.Context, locationID domain.LocationID) ([]models.Recipient, error) {
	return s.recipients(ctx, `
		SELECT u.id, u.email, u.first_name, u.surname, s.id
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.location_id = $1
		ORDER BY u.email
	`, string(locationID))
}

func (s *PostgresStore) RecipientsByListType(ctx context.Context, listTypeID domain.ListTypeID, languages []domain.Language) ([]models.Recipient, error) {
	return s.recipients(ctx, `
		SELECT u.id, u.email, u.first_name, u.surname, s.id
		FROM subscription_list_types s
		JOIN users u ON u.id = s.user_id
		WHERE s.list_type_id = $1 AND s.languages && $2::text[]
		ORDER BY u.email
	`, int(listTypeID), pq.Array(languageStrings(languages)))
}

func (s *PostgresStore) recipients(ctx context.Context, query string, args ...any) ([]models.Recipient, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find recipients: %w", err)
	}
	defer rows.Close()

	var out []models.Recipient
	for rows.Next() {
		var (
			userID, subID uuid.UUID
			r             models.Recipient
		)
		if err := rows.Scan(&userID, &r.Email, &r.FirstName, &r.Surname, &subID); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		r.UserID = domain.UserID(userID)
		r.SubscriptionID = domain.SubscriptionID(subID)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) deleteOne(ctx context.Context, table string, id domain.SubscriptionID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*models.LocationSubscription, error) {
	var (
		id, userID uuid.UUID
		locationID string
		sub        models.LocationSubscription
	)
	if err := row.Scan(&id, &userID, &locationID, &sub.CreatedAt); err != nil {
		return nil, err
	}
	sub.ID = domain.SubscriptionID(id)
	sub.UserID = domain.UserID(userID)
	sub.LocationID = domain.LocationID(locationID)
	return &sub, nil
}

func scanListType(row rowScanner) (*models.ListTypeSubscription, error) {
	var (
		id, userID uuid.UUID
		listTypeID int
		languages  pq.StringArray
		sub        models.ListTypeSubscription
	)
	if err := row.Scan(&id, &userID, &listTypeID, &languages, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	sub.ID = domain.SubscriptionID(id)
	sub.UserID = domain.UserID(userID)
	sub.ListTypeID = domain.ListTypeID(listTypeID)
	for _, l := range languages {
		sub.Languages = append(sub.Languages, domain.Language(l))
	}
	return &sub, nil
}

func languageStrings(langs []domain.Language) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}
