package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// FavoriteRepository defines the persistence operations for favorites.
type FavoriteRepository interface {
	// Add persists a favorite. Adding an already-favorited product is a
	// no-op.
	Add(ctx context.Context, fav *domain.Favorite) error

	// Remove deletes a user's favorite for a product. Returns
	// ErrNotFound when none exists.
	Remove(ctx context.Context, userID, productID string) error

	// ListByUser retrieves a user's favorites, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
}
