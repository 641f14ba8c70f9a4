package redis

import (
	"context"
	"time"
)

// ConfigCacheInterface defines the interface for platform config caching.
type ConfigCacheInterface interface {
	GetConfig(ctx context.Context, key string, dst any) (bool, error)
	SetConfig(ctx context.Context, key string, value any) error
	InvalidateConfig(ctx context.Context, key string) error
}

// ProductCacheInterface defines the interface for product caching.
type ProductCacheInterface interface {
	GetProduct(ctx context.Context, productID string) (*CachedProduct, error)
	SetProduct(ctx context.Context, product *CachedProduct) error
	InvalidateProduct(ctx context.Context, productID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquirePaymentLock(ctx context.Context, productID string, ttl time.Duration) (bool, error)
	ReleasePaymentLock(ctx context.Context, productID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ ConfigCacheInterface  = (*CacheStore)(nil)
	_ ProductCacheInterface = (*CacheStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
)
