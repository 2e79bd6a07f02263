package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	artefactService "courtpub/internal/artefact/service"
	artefactStore "courtpub/internal/artefact/store"
	ingestionService "courtpub/internal/ingestion/service"
	ingestionStore "courtpub/internal/ingestion/store"
	notificationHandler "courtpub/internal/notification/handler"
	notificationService "courtpub/internal/notification/service"
	notificationStore "courtpub/internal/notification/store"
	"courtpub/internal/platform/config"
	"courtpub/internal/platform/postgres"
	subscriptionService "courtpub/internal/subscription/service"
	subscriptionStore "courtpub/internal/subscription/store"
)

type artefacts interface {
	artefactService.Store
	ingestionService.ArtefactStore
}

type notificationLogs interface {
	notificationService.LogStore
	notificationHandler.LogLister
	subscriptionService.NotificationLogPurger
}

// stores groups the persistence backends for one process. tx is nil for
// the in-memory backends, which leaves the subscription service on its
// sharded in-process transaction runner.
type stores struct {
	artefacts     artefacts
	ingestionLogs ingestionService.LogStore
	subscriptions subscriptionService.Store
	notifications notificationLogs
	tx            subscriptionService.StoreTx
	ping          func(ctx context.Context) error
	close         func() error
}

// openStores picks Postgres when DATABASE_URL is set. The in-memory
// subscription store only knows the users listed in
// SUBSCRIPTION_USERS_SEED_PATH; without it no subscriber resolves to a
// recipient and publications notify nobody.
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Database.URL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		subscriptions, err := memorySubscriptions(cfg.Subscription, logger)
		if err != nil {
			return nil, err
		}
		return &stores{
			artefacts:     artefactStore.NewInMemoryStore(),
			ingestionLogs: ingestionStore.NewInMemoryStore(),
			subscriptions: subscriptions,
			notifications: notificationStore.NewInMemoryStore(),
			close:         func() error { return nil },
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.Database.EnsureSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("database schema ensured")
	}
	return postgresStores(db, cfg.Subscription), nil
}

func memorySubscriptions(cfg config.SubscriptionConfig, logger *slog.Logger) (*subscriptionStore.InMemoryStore, error) {
	s := subscriptionStore.NewInMemoryStore()
	if cfg.UsersSeedPath == "" {
		logger.Warn("no users seeded for in-memory stores, publications notify nobody")
		return s, nil
	}
	n, err := s.SeedUsersFile(cfg.UsersSeedPath)
	if err != nil {
		return nil, err
	}
	logger.Info("users seeded", "count", n, "source", cfg.UsersSeedPath)
	return s, nil
}

func postgresStores(db *sql.DB, cfg config.SubscriptionConfig) *stores {
	return &stores{
		artefacts:     artefactStore.NewPostgres(db),
		ingestionLogs: ingestionStore.NewPostgres(db),
		subscriptions: subscriptionStore.NewPostgres(db),
		notifications: notificationStore.NewPostgres(db),
		tx:            newSubscriptionPostgresTx(db, cfg.TxTimeout),
		ping:          db.PingContext,
		close: func() error {
			if err := db.Close(); err != nil {
				return fmt.Errorf("close postgres: %w", err)
			}
			return nil
		},
	}
}
