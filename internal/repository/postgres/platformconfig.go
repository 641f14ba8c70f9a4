package postgres

import (
	"context"
	"database/sql"
	"errors"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// ConfigRepository is a PostgreSQL implementation of repository.ConfigRepository.
type ConfigRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new PostgreSQL config repository.
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get retrieves a configuration entry by key.
func (r *ConfigRepository) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	query := `SELECT key, value, updated_at FROM platform_config WHERE key = $1`

	var entry domain.ConfigEntry
	err := r.db.QueryRowContext(ctx, query, key).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Set upserts a configuration entry.
func (r *ConfigRepository) Set(ctx context.Context, entry *domain.ConfigEntry) error {
	query := `
		INSERT INTO platform_config (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, entry.Key, entry.Value)
	return err
}
