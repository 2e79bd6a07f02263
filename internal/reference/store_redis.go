package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultSnapshotKey = "courtpub:reference:snapshot"

// RedisStore shares one reference snapshot between service instances.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKey overrides the Redis key the snapshot lives under.
func WithKey(key string) RedisStoreOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, key: defaultSnapshotKey}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Publish writes snap without expiry.
func (s *RedisStore) Publish(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap.Document())
	if err != nil {
		return fmt.Errorf("marshal reference snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("publish reference snapshot: %w", err)
	}
	return nil
}

// Load returns nil, nil when nothing has been published yet.
func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load reference snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode reference snapshot: %w", err)
	}
	return NewSnapshot(doc)
}
