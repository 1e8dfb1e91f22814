package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sweepLockTTL outlives a daily schedule by one hour so a wedged worker can
// never block the next day's sweep, while two live replicas still exclude
// each other.
const sweepLockTTL = 25 * time.Hour

// Lock serializes sweep runs across worker replicas.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisLock is a SETNX lease with a per-acquisition token, so a replica whose
// lease expired mid-run cannot release a lock another replica now holds.
type RedisLock struct {
	store lockStore
	key   string
	ttl   time.Duration
	token string
}

// NewRedisLock builds a lock on the given key. A non-positive TTL falls back
// to the sweep default.
func NewRedisLock(store lockStore, key string, ttl time.Duration) (*RedisLock, error) {
	if store == nil {
		return nil, errors.New("redis client required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if ttl <= 0 {
		ttl = sweepLockTTL
	}
	return &RedisLock{store: store, key: key, ttl: ttl}, nil
}

// Acquire claims the lease under a fresh token. A false return means another
// replica holds it.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	claimed, err := l.store.SetNX(ctx, l.key, token, l.ttl)
	if err != nil {
		return false, fmt.Errorf("claim sweep lock: %w", err)
	}
	if claimed {
		l.token = token
	}
	return claimed, nil
}

// Release drops the lease, but only while the stored token is still ours.
func (l *RedisLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	current, err := l.store.Get(ctx, l.key)
	if errors.Is(err, redis.Nil) {
		l.token = ""
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sweep lock token: %w", err)
	}
	if current != l.token {
		// The lease expired and someone else claimed it. Not ours to drop.
		l.token = ""
		return nil
	}
	if err := l.store.Del(ctx, l.key); err != nil {
		return fmt.Errorf("drop sweep lock: %w", err)
	}
	l.token = ""
	return nil
}
