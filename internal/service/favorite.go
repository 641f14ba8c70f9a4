package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// FavoriteService manages a user's bookmarked listings.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
	logger       *zap.SugaredLogger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository, logger *zap.SugaredLogger) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// FavoriteItem is a favorite joined with its listing.
type FavoriteItem struct {
	Favorite *domain.Favorite
	Product  *domain.Product
}

// AddFavorite bookmarks a listing for a user. Re-favoriting the same
// listing is a no-op.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	// The listing must exist; favorites on deleted products 404.
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	fav := &domain.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.favoriteRepo.Add(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

// RemoveFavorite drops a user's bookmark on a listing.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return ErrInvalidProductID
	}
	return s.favoriteRepo.Remove(ctx, userID, productID)
}

// ListFavorites returns a user's bookmarks joined with their listings,
// newest first. Bookmarks whose listing no longer resolves are skipped.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]*FavoriteItem, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*FavoriteItem, 0, len(favorites))
	for _, fav := range favorites {
		product, err := s.productRepo.GetByID(ctx, fav.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warnw("favorite points at a missing listing", "favorite_id", fav.ID, "product_id", fav.ProductID)
				continue
			}
			return nil, err
		}
		items = append(items, &FavoriteItem{Favorite: fav, Product: product})
	}
	return items, nil
}
