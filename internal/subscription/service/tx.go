package service

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// StoreTx runs fn as one unit of work. Implementations serialize units of work
// for the same user: a Postgres transaction holding an advisory lock, or a
// sharded mutex in memory.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

const (
	numTxShards      = 128
	defaultTxTimeout = 5 * time.Second
)

// ShardedTx is the in-memory StoreTx. Units of work for one user share a
// shard, so they run one at a time.
type ShardedTx struct {
	shards  [numTxShards]sync.Mutex
	store   Store
	timeout time.Duration
}

// NewShardedTx wraps store. A zero timeout uses the default.
func NewShardedTx(store Store, timeout time.Duration) *ShardedTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &ShardedTx{store: store, timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := shardFor(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(t.store)
}

func shardFor(ctx context.Context) int {
	userID, ok := TxUser(ctx)
	if !ok {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID.String()))
	return int(h.Sum32() % numTxShards)
}

type txUserKey struct{}

func withTxUser(ctx context.Context, userID domain.UserID) context.Context {
	return context.WithValue(ctx, txUserKey{}, userID)
}

// TxUser returns the user whose unit of work ctx belongs to. Transaction
// runners lock on it.
func TxUser(ctx context.Context) (domain.UserID, bool) {
	userID, ok := ctx.Value(txUserKey{}).(domain.UserID)
	return userID, ok && !userID.IsNil()
}
