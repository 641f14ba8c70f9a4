package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/redis"
	"worldmarket/internal/repository"
)

// ProductService handles listing operations.
type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	cache       redis.ProductCacheInterface
	logger      *zap.SugaredLogger
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository, cache redis.ProductCacheInterface, logger *zap.SugaredLogger) *ProductService {
	return &ProductService{productRepo: productRepo, userRepo: userRepo, cache: cache, logger: logger}
}

// CreateProductRequest contains the parameters for creating a listing.
type CreateProductRequest struct {
	SellerID    string
	Title       string
	Description string
	Price       float64
	Currency    string
	Category    string
	Country     string
	Images      []string
}

// CreateProduct creates a listing in the inactive state. It becomes active
// only after the listing fee payment is verified.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	if req.SellerID == "" {
		return nil, ErrInvalidSellerID
	}
	if req.Title == "" {
		return nil, ErrInvalidListingTitle
	}
	if req.Price <= 0 {
		return nil, ErrInvalidListingPrice
	}
	if req.Currency == "" {
		req.Currency = "WLD"
	}

	seller, err := s.userRepo.GetByID(ctx, req.SellerID)
	if err != nil {
		return nil, err
	}
	if !seller.IsSeller {
		return nil, ErrNotSeller
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		SellerID:    req.SellerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    req.Category,
		Country:     req.Country,
		Images:      req.Images,
		Status:      domain.ProductStatusInactive,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Infow("listing created", "product_id", product.ID, "seller_id", product.SellerID)
	return product, nil
}

// GetProduct retrieves a product by ID, serving the detail view through a
// short-lived cache. The TTL is short because status flips on payment.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	cached, err := s.cache.GetProduct(ctx, productID)
	if err != nil {
		s.logger.Warnw("product cache read failed", "product_id", productID, "error", err)
	}
	if cached != nil {
		return cachedToProduct(cached), nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProduct(ctx, productToCached(product)); err != nil {
		s.logger.Warnw("product cache write failed", "product_id", productID, "error", err)
	}
	return product, nil
}

// BrowseProducts lists active products, optionally filtered by category
// and country.
func (s *ProductService) BrowseProducts(ctx context.Context, category, country string, limit, offset int) ([]*domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.productRepo.List(ctx, domain.ProductFilter{
		Status:   domain.ProductStatusActive,
		Category: category,
		Country:  country,
		Limit:    limit,
		Offset:   offset,
	})
}

// MyListings lists all products of a seller regardless of status.
func (s *ProductService) MyListings(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	if sellerID == "" {
		return nil, ErrInvalidSellerID
	}
	return s.productRepo.ListBySeller(ctx, sellerID)
}

// allowedTransitions are the owner-driven listing status changes.
// Activation out of inactive/pending happens through payment verification
// only, never directly.
var allowedTransitions = map[domain.ProductStatus][]domain.ProductStatus{
	domain.ProductStatusActive: {domain.ProductStatusPaused, domain.ProductStatusSold},
	domain.ProductStatusPaused: {domain.ProductStatusActive, domain.ProductStatusSold},
}

// UpdateStatus applies an owner-driven status change.
func (s *ProductService) UpdateStatus(ctx context.Context, productID, sellerID string, status domain.ProductStatus) (*domain.Product, error) {
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, ErrNotListingOwner
	}

	if !transitionAllowed(product.Status, status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.productRepo.UpdateStatus(ctx, productID, status); err != nil {
		return nil, err
	}
	product.Status = status
	s.invalidateCache(ctx, productID)

	s.logger.Infow("listing status changed", "product_id", productID, "status", status)
	return product, nil
}

// Deactivate takes a listing off the marketplace (admin moderation).
func (s *ProductService) Deactivate(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrInvalidProductID
	}
	if err := s.productRepo.UpdateStatus(ctx, productID, domain.ProductStatusInactive); err != nil {
		return err
	}
	s.invalidateCache(ctx, productID)
	return nil
}

// AllListings lists products in any status (admin view).
func (s *ProductService) AllListings(ctx context.Context, status domain.ProductStatus) ([]*domain.Product, error) {
	return s.productRepo.List(ctx, domain.ProductFilter{Status: status})
}

func transitionAllowed(from, to domain.ProductStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *ProductService) invalidateCache(ctx context.Context, productID string) {
	if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warnw("product cache invalidation failed", "product_id", productID, "error", err)
	}
}

func productToCached(p *domain.Product) *redis.CachedProduct {
	return &redis.CachedProduct{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Category:    p.Category,
		Country:     p.Country,
		Images:      p.Images,
		Status:      string(p.Status),
	}
}

func cachedToProduct(c *redis.CachedProduct) *domain.Product {
	return &domain.Product{
		ID:          c.ID,
		SellerID:    c.SellerID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Currency:    c.Currency,
		Category:    c.Category,
		Country:     c.Country,
		Images:      c.Images,
		Status:      domain.ProductStatus(c.Status),
	}
}
