package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// ConfigRepository defines the persistence operations for the
// platform_config key-value table.
type ConfigRepository interface {
	// Get retrieves a configuration entry by key.
	// Returns ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) (*domain.ConfigEntry, error)

	// Set upserts a configuration entry.
	Set(ctx context.Context, entry *domain.ConfigEntry) error
}
