// Package service manages user subscriptions and resolves the recipients of a
// publication.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"courtpub/internal/reference"
	"courtpub/internal/subscription/metrics"
	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/platform/dedupe"
	"courtpub/pkg/platform/sentinel"
	"courtpub/pkg/requestcontext"
)

// DefaultMaxSubscriptions is the per-user cap for each kind of subscription.
const DefaultMaxSubscriptions = 50

// Store persists subscriptions. Create and delete methods return
// sentinel.ErrConflict and sentinel.ErrNotFound.
type Store interface {
	CreateLocation(ctx context.Context, sub *models.LocationSubscription) error
	FindLocation(ctx context.Context, id domain.SubscriptionID) (*models.LocationSubscription, error)
	ListLocationsByUser(ctx context.Context, userID domain.UserID) ([]*models.LocationSubscription, error)
	DeleteLocation(ctx context.Context, id domain.SubscriptionID) error

	// UpsertListType inserts sub, or replaces the language set of the user's
	// existing subscription to the same list type.
	UpsertListType(ctx context.Context, sub *models.ListTypeSubscription) error
	FindListType(ctx context.Context, id domain.SubscriptionID) (*models.ListTypeSubscription, error)
	ListListTypesByUser(ctx context.Context, userID domain.UserID) ([]*models.ListTypeSubscription, error)
	DeleteListType(ctx context.Context, id domain.SubscriptionID) error

	DeleteByUser(ctx context.Context, userID domain.UserID) (int, error)

	RecipientsByLocation(ctx context.Context, locationID domain.LocationID) ([]models.Recipient, error)
	// RecipientsByListType returns subscribers to listTypeID whose language set
	// contains any of languages.
	RecipientsByListType(ctx context.Context, listTypeID domain.ListTypeID, languages []domain.Language) ([]models.Recipient, error)
}

// ReferenceProvider returns the current reference snapshot.
type ReferenceProvider interface {
	Snapshot() *reference.Snapshot
}

// NotificationLogPurger removes a user's notification history.
type NotificationLogPurger interface {
	DeleteByUser(ctx context.Context, userID domain.UserID) (int, error)
}

type nopPurger struct{}

func (nopPurger) DeleteByUser(context.Context, domain.UserID) (int, error) { return 0, nil }

var errSubscriptionNotFound = dErrors.New(dErrors.CodeNotFound, "Subscription not found")

type Service struct {
	store            Store
	tx               StoreTx
	reference        ReferenceProvider
	purger           NotificationLogPurger
	maxSubscriptions int
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTx sets the transaction runner. Defaults to a ShardedTx over the store.
func WithTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// WithMaxSubscriptions overrides the per-user cap. Non-positive values are
// ignored.
func WithMaxSubscriptions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSubscriptions = n
		}
	}
}

// WithNotificationLogPurger sets what RemoveUser uses to delete a user's
// notification history.
func WithNotificationLogPurger(p NotificationLogPurger) Option {
	return func(s *Service) {
		s.purger = p
	}
}

func New(store Store, ref ReferenceProvider, opts ...Option) *Service {
	s := &Service{
		store:            store,
		reference:        ref,
		purger:           nopPurger{},
		maxSubscriptions: DefaultMaxSubscriptions,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = NewShardedTx(store, 0)
	}
	return s
}

// CreateSubscription subscribes userID to one location. Subscribing to a
// location already held returns the existing subscription.
func (s *Service) CreateSubscription(ctx context.Context, userID domain.UserID, locationID domain.LocationID) (*models.LocationSubscription, error) {
	if !s.reference.Snapshot().LocationExists(locationID) {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown location: "+locationID.String())
	}

	var result *models.LocationSubscription
	err := s.runInTx(ctx, userID, func(st Store) error {
		existing, err := st.ListLocationsByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, sub := range existing {
			if sub.LocationID == locationID {
				result = sub
				return nil
			}
		}
		if len(existing)+1 > s.maxSubscriptions {
			s.metrics.IncrementCapRejections(metrics.KindLocation)
			return s.capError()
		}
		sub := &models.LocationSubscription{
			ID:         domain.NewSubscriptionID(),
			UserID:     userID,
			LocationID: locationID,
			CreatedAt:  requestcontext.Now(ctx),
		}
		if err := st.CreateLocation(ctx, sub); err != nil {
			return err
		}
		s.metrics.IncrementCreated(metrics.KindLocation, 1)
		result = sub
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to create subscription")
	}
	return result, nil
}

// CreateMultipleSubscriptions subscribes userID to each location in one unit
// of work. Unknown locations are reported per item without failing the rest;
// exceeding the cap fails the whole batch and nothing is written.
func (s *Service) CreateMultipleSubscriptions(ctx context.Context, userID domain.UserID, locationIDs []string) (*models.BatchResult, error) {
	ids := dedupe.Strings(locationIDs)
	if len(ids) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "location_ids must not be empty")
	}
	snap := s.reference.Snapshot()

	var result models.BatchResult
	err := s.runInTx(ctx, userID, func(st Store) error {
		result = models.BatchResult{}
		existing, err := st.ListLocationsByUser(ctx, userID)
		if err != nil {
			return err
		}
		held := make(map[domain.LocationID]struct{}, len(existing))
		for _, sub := range existing {
			held[sub.LocationID] = struct{}{}
		}

		var pending []domain.LocationID
		for _, raw := range ids {
			id := domain.LocationID(raw)
			if !snap.LocationExists(id) {
				result.Fail(raw, "unknown location")
				continue
			}
			if _, ok := held[id]; ok {
				result.Succeed()
				continue
			}
			pending = append(pending, id)
		}
		if len(existing)+len(pending) > s.maxSubscriptions {
			s.metrics.IncrementCapRejections(metrics.KindLocation)
			return s.capError()
		}

		now := requestcontext.Now(ctx)
		created := 0
		for _, id := range pending {
			err := st.CreateLocation(ctx, &models.LocationSubscription{
				ID:         domain.NewSubscriptionID(),
				UserID:     userID,
				LocationID: id,
				CreatedAt:  now,
			})
			switch {
			case err == nil:
				created++
				result.Succeed()
			case errors.Is(err, sentinel.ErrConflict):
				result.Succeed()
			default:
				s.logger.WarnContext(ctx, "failed to create location subscription",
					"error", err,
					"location_id", id.String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				result.Fail(id.String(), "could not create subscription")
			}
		}
		s.metrics.IncrementCreated(metrics.KindLocation, created)
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to create subscriptions")
	}
	s.metrics.IncrementItemFailures(metrics.KindLocation, result.Failed)
	return &result, nil
}

// UpsertListTypeSubscriptions subscribes userID to each list type with the
// given languages. A list type already held has its languages replaced rather
// than gaining a second row. Batch semantics match CreateMultipleSubscriptions.
func (s *Service) UpsertListTypeSubscriptions(ctx context.Context, userID domain.UserID, listTypeIDs []domain.ListTypeID, languages []domain.Language) (*models.BatchResult, error) {
	ids := dedupe.Values(listTypeIDs)
	if len(ids) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "list_type_ids must not be empty")
	}
	languages = dedupe.Values(languages)
	if err := models.ValidateLanguages(languages); err != nil {
		return nil, err
	}
	snap := s.reference.Snapshot()

	type planned struct {
		listTypeID domain.ListTypeID
		existing   *models.ListTypeSubscription
	}

	var result models.BatchResult
	err := s.runInTx(ctx, userID, func(st Store) error {
		result = models.BatchResult{}
		existing, err := st.ListListTypesByUser(ctx, userID)
		if err != nil {
			return err
		}
		held := make(map[domain.ListTypeID]*models.ListTypeSubscription, len(existing))
		for _, sub := range existing {
			held[sub.ListTypeID] = sub
		}

		var plan []planned
		newRows := 0
		for _, id := range ids {
			if _, ok := snap.ListTypeByID(id); !ok {
				result.Fail(id.String(), "unknown list type")
				continue
			}
			current := held[id]
			if current == nil {
				newRows++
			}
			plan = append(plan, planned{listTypeID: id, existing: current})
		}
		if len(existing)+newRows > s.maxSubscriptions {
			s.metrics.IncrementCapRejections(metrics.KindListType)
			return s.capError()
		}

		now := requestcontext.Now(ctx)
		created, updated := 0, 0
		for _, p := range plan {
			var sub *models.ListTypeSubscription
			if p.existing != nil {
				next := *p.existing
				next.Languages = slices.Clone(languages)
				next.UpdatedAt = now
				sub = &next
			} else {
				sub, err = models.NewListTypeSubscription(domain.NewSubscriptionID(), userID, p.listTypeID, languages, now)
				if err != nil {
					return err
				}
			}
			if err := st.UpsertListType(ctx, sub); err != nil {
				s.logger.WarnContext(ctx, "failed to upsert list type subscription",
					"error", err,
					"list_type_id", int(p.listTypeID),
					"request_id", requestcontext.RequestID(ctx),
				)
				result.Fail(p.listTypeID.String(), "could not save subscription")
				continue
			}
			if p.existing != nil {
				updated++
			} else {
				created++
			}
			result.Succeed()
		}
		s.metrics.IncrementCreated(metrics.KindListType, created)
		s.metrics.IncrementUpdated(updated)
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to save list type subscriptions")
	}
	s.metrics.IncrementItemFailures(metrics.KindListType, result.Failed)
	return &result, nil
}

// DeleteSubscription deletes a location subscription owned by userID. A
// missing subscription and one owned by someone else are indistinguishable.
func (s *Service) DeleteSubscription(ctx context.Context, userID domain.UserID, id domain.SubscriptionID) error {
	err := s.runInTx(ctx, userID, func(st Store) error {
		sub, err := st.FindLocation(ctx, id)
		if err != nil {
			return err
		}
		if sub.UserID != userID {
			s.logForeignDelete(ctx, userID, id)
			return errSubscriptionNotFound
		}
		return st.DeleteLocation(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, err, "failed to delete subscription")
	}
	s.metrics.IncrementDeleted(metrics.KindLocation, 1)
	return nil
}

// DeleteListTypeSubscription is DeleteSubscription for list type
// subscriptions.
func (s *Service) DeleteListTypeSubscription(ctx context.Context, userID domain.UserID, id domain.SubscriptionID) error {
	err := s.runInTx(ctx, userID, func(st Store) error {
		sub, err := st.FindListType(ctx, id)
		if err != nil {
			return err
		}
		if sub.UserID != userID {
			s.logForeignDelete(ctx, userID, id)
			return errSubscriptionNotFound
		}
		return st.DeleteListType(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, err, "failed to delete subscription")
	}
	s.metrics.IncrementDeleted(metrics.KindListType, 1)
	return nil
}

func (s *Service) ListForUser(ctx context.Context, userID domain.UserID) (*models.UserSubscriptions, error) {
	locations, err := s.store.ListLocationsByUser(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to list subscriptions")
	}
	listTypes, err := s.store.ListListTypesByUser(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to list subscriptions")
	}
	return &models.UserSubscriptions{Locations: locations, ListTypes: listTypes}, nil
}

// RemoveUser deletes all of a user's subscriptions and notification history.
// Notification history goes first so a failure leaves the subscriptions in
// place for a retry.
func (s *Service) RemoveUser(ctx context.Context, userID domain.UserID) (*models.RemovalSummary, error) {
	logs, err := s.purger.DeleteByUser(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to delete notification history")
	}

	var removed int
	err = s.runInTx(ctx, userID, func(st Store) error {
		n, err := st.DeleteByUser(ctx, userID)
		removed = n
		return err
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to delete subscriptions")
	}

	s.logger.InfoContext(ctx, "user subscriptions removed",
		"user_id", userID.String(),
		"subscriptions", removed,
		"notification_logs", logs,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.RemovalSummary{Subscriptions: removed, NotificationLogs: logs}, nil
}

func (s *Service) runInTx(ctx context.Context, userID domain.UserID, fn func(Store) error) error {
	return s.tx.RunInTx(withTxUser(ctx, userID), fn)
}

func (s *Service) capError() error {
	return dErrors.New(dErrors.CodeSubscriptionCap, fmt.Sprintf("subscription limit of %d reached", s.maxSubscriptions))
}

func (s *Service) logForeignDelete(ctx context.Context, userID domain.UserID, id domain.SubscriptionID) {
	s.logger.WarnContext(ctx, "attempt to delete another user's subscription",
		"user_id", userID.String(),
		"subscription_id", id.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
}

// translate passes domain errors through and maps store sentinels.
func (s *Service) translate(ctx context.Context, err error, msg string) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return errSubscriptionNotFound
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "subscription already exists")
	}
	s.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
