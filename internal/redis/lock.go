package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquirePaymentLock attempts to acquire the payment initiation lock for a
// product. It serializes supersede-and-create so two initiations for the
// same product cannot interleave. Returns true if the lock was acquired,
// false if already held.
func (s *LockStore) AcquirePaymentLock(ctx context.Context, productID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:payment:%s", productID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleasePaymentLock releases the payment initiation lock for a product.
func (s *LockStore) ReleasePaymentLock(ctx context.Context, productID string) error {
	key := fmt.Sprintf("lock:payment:%s", productID)

	return s.client.Del(ctx, key).Err()
}
