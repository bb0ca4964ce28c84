package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis. The command path takes the
// aggregate's lock before deciding so at most one decision per aggregate id
// is in flight at a time.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireAggregateLock attempts to acquire the lock for the given aggregate.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireAggregateLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, fmt.Sprintf("lock:aggregate:%s", key), "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleaseAggregateLock releases the lock for the given aggregate.
func (s *LockStore) ReleaseAggregateLock(ctx context.Context, key string) error {
	return s.client.Del(ctx, fmt.Sprintf("lock:aggregate:%s", key)).Err()
}
