package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	subscriptionservice "courtpub/internal/subscription/service"
	subscriptionstore "courtpub/internal/subscription/store"
	dErrors "courtpub/pkg/domain-errors"
)

const defaultSubscriptionTxTimeout = 5 * time.Second

// subscriptionPostgresTx runs each subscription unit of work in one
// transaction. Units of work for the same user serialize on a transaction
// scoped advisory lock, so the cap check and the inserts see the same rows.
type subscriptionPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newSubscriptionPostgresTx(db *sql.DB, timeout time.Duration) *subscriptionPostgresTx {
	return &subscriptionPostgresTx{db: db, timeout: timeout}
}

func (t *subscriptionPostgresTx) RunInTx(ctx context.Context, fn func(store subscriptionservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultSubscriptionTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin subscription tx: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if userID, ok := subscriptionservice.TxUser(ctx); ok {
		if _, err := sqlTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", userID.String()); err != nil {
			return fmt.Errorf("lock user subscriptions: %w", err)
		}
	}

	if err := fn(subscriptionstore.NewPostgresTx(sqlTx)); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit subscription tx: %w", err)
	}
	return nil
}
