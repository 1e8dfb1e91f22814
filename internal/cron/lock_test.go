package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeLockStore struct {
	values map[string]string
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: map[string]string{}}
}

func (f *fakeLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, held := f.values[key]; held {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeLockStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLockExcludesSecondReplica(t *testing.T) {
	store := newFakeLockStore()
	first, err := NewRedisLock(store, "mm:cron:test", 0)
	if err != nil {
		t.Fatalf("NewRedisLock failed: %v", err)
	}
	second, err := NewRedisLock(store, "mm:cron:test", 0)
	if err != nil {
		t.Fatalf("NewRedisLock failed: %v", err)
	}

	if ok, err := first.Acquire(context.Background()); err != nil || !ok {
		t.Fatalf("first replica should claim the lock: ok=%v err=%v", ok, err)
	}
	if ok, _ := second.Acquire(context.Background()); ok {
		t.Fatalf("second replica must not claim a held lock")
	}

	if err := first.Release(context.Background()); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if ok, _ := second.Acquire(context.Background()); !ok {
		t.Fatalf("lock should be free after release")
	}
}

func TestRedisLockReleaseLeavesForeignToken(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "mm:cron:test", 0)
	if err != nil {
		t.Fatalf("NewRedisLock failed: %v", err)
	}
	if ok, _ := lock.Acquire(context.Background()); !ok {
		t.Fatalf("expected to claim the lock")
	}

	// Simulate the lease expiring and another replica claiming the key.
	store.values["mm:cron:test"] = "someone-else"

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if store.values["mm:cron:test"] != "someone-else" {
		t.Fatalf("release must not drop a lock owned by another replica")
	}
}
