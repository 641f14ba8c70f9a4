package postgres

import (
	"context"
	"database/sql"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// FavoriteRepository is a PostgreSQL implementation of repository.FavoriteRepository.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new PostgreSQL favorite repository.
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add persists a favorite. Re-favoriting the same product is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, fav *domain.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, fav.ID, fav.UserID, fav.ProductID)
	return err
}

// Remove deletes a user's favorite for a product.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByUser retrieves a user's favorites, newest first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	query := `SELECT id, user_id, product_id, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.ProductID, &fav.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, &fav)
	}
	return favorites, rows.Err()
}
