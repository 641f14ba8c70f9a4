package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// ConfigCacheTTL bounds how stale a platform configuration read may
	// be. Fee changes take effect within this window.
	ConfigCacheTTL = 5 * time.Minute
	// ProductCacheTTL is short: listing status flips on payment.
	ProductCacheTTL = 10 * time.Second
)

// Key prefixes
const (
	configCachePrefix  = "cache:config:"
	productCachePrefix = "cache:product:"
)

// GetConfig retrieves a cached platform configuration document by key and
// decodes it into dst. Returns false on a cache miss.
func (s *CacheStore) GetConfig(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, configCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // Cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetConfig caches a platform configuration document under its key.
func (s *CacheStore) SetConfig(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, configCachePrefix+key, data, ConfigCacheTTL).Err()
}

// InvalidateConfig removes a platform configuration document from cache.
// Admin writes call this so the bounded staleness window only applies to
// unchanged keys.
func (s *CacheStore) InvalidateConfig(ctx context.Context, key string) error {
	return s.client.Del(ctx, configCachePrefix+key).Err()
}

// CachedProduct represents a cached product entity.
type CachedProduct struct {
	ID          string   `json:"id"`
	SellerID    string   `json:"seller_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Country     string   `json:"country"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
}

// GetProduct retrieves a product from cache.
func (s *CacheStore) GetProduct(ctx context.Context, productID string) (*CachedProduct, error) {
	data, err := s.client.Get(ctx, productCachePrefix+productID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var product CachedProduct
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetProduct stores a product in cache.
func (s *CacheStore) SetProduct(ctx context.Context, product *CachedProduct) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, productCachePrefix+product.ID, data, ProductCacheTTL).Err()
}

// InvalidateProduct removes a product from cache.
func (s *CacheStore) InvalidateProduct(ctx context.Context, productID string) error {
	return s.client.Del(ctx, productCachePrefix+productID).Err()
}
