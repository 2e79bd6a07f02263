package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"courtpub/internal/notification/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

var logColumns = []string{
	"id", "subscription_id", "user_id", "publication_id", "location_id", "status",
	"gateway_id", "error_message", "created_at", "sent_at", "failed_at",
}

// PostgresStore persists notification logs in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreatePending(ctx context.Context, log *models.NotificationLog) (*models.NotificationLog, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_logs (id, subscription_id, user_id, publication_id, location_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subscription_id, publication_id) DO NOTHING
	`, string(log.ID), uuid.UUID(log.SubscriptionID), uuid.UUID(log.UserID), uuid.UUID(log.PublicationID),
		string(log.LocationID), string(log.Status), log.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert notification log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("insert notification log: %w", err)
	}
	if n == 1 {
		cp := *log
		return &cp, true, nil
	}

	existing, err := s.findOne(ctx, sq.Eq{
		"subscription_id": log.SubscriptionID.String(),
		"publication_id":  log.PublicationID.String(),
	})
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) MarkSent(ctx context.Context, id domain.NotificationID, gatewayID string, at time.Time) error {
	return s.transition(ctx, id, `
		UPDATE notification_logs SET status = $2, gateway_id = $3, sent_at = $4
		WHERE id = $1 AND status = 'PENDING'
	`, string(id), string(models.StatusSent), gatewayID, at)
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id domain.NotificationID, msg string, at time.Time) error {
	return s.transition(ctx, id, `
		UPDATE notification_logs SET status = $2, error_message = $3, failed_at = $4
		WHERE id = $1 AND status = 'PENDING'
	`, string(id), string(models.StatusFailed), msg, at)
}

// transition runs a conditional update and explains a miss.
func (s *PostgresStore) transition(ctx context.Context, id domain.NotificationID, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update notification log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update notification log: %w", err)
	}
	if n == 1 {
		return nil
	}
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("notification %s is %s: %w", id, current.Status, sentinel.ErrInvalidState)
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.NotificationID) (*models.NotificationLog, error) {
	return s.findOne(ctx, sq.Eq{"id": string(id)})
}

func (s *PostgresStore) ListByPublication(ctx context.Context, publicationID domain.ArtefactID) ([]*models.NotificationLog, error) {
	query, args, err := sq.Select(logColumns...).
		From("notification_logs").
		Where(sq.Eq{"publication_id": publicationID.String()}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notification query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notification logs: %w", err)
	}
	defer rows.Close()

	var out []*models.NotificationLog
	for rows.Next() {
		n, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteByUser(ctx context.Context, userID domain.UserID) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notification_logs WHERE user_id = $1`, uuid.UUID(userID))
	if err != nil {
		return 0, fmt.Errorf("delete notification logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete notification logs: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) findOne(ctx context.Context, where sq.Eq) (*models.NotificationLog, error) {
	query, args, err := sq.Select(logColumns...).
		From("notification_logs").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notification query: %w", err)
	}
	n, err := scanLog(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*models.NotificationLog, error) {
	var (
		n                     models.NotificationLog
		id, status, location  string
		subID, userID, pubID  uuid.UUID
		gatewayID, errMessage sql.NullString
		sentAt, failedAt      sql.NullTime
	)
	if err := row.Scan(&id, &subID, &userID, &pubID, &location, &status,
		&gatewayID, &errMessage, &n.CreatedAt, &sentAt, &failedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan notification log: %w", err)
	}
	n.ID = domain.NotificationID(id)
	n.SubscriptionID = domain.SubscriptionID(subID)
	n.UserID = domain.UserID(userID)
	n.PublicationID = domain.ArtefactID(pubID)
	n.LocationID = domain.LocationID(location)
	n.Status = models.Status(status)
	n.GatewayID = gatewayID.String
	n.ErrorMessage = errMessage.String
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}
	if failedAt.Valid {
		t := failedAt.Time
		n.FailedAt = &t
	}
	return &n, nil
}
