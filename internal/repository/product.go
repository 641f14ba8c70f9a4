package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// ProductRepository defines the persistence operations for listings.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List retrieves products matching the filter, newest first.
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)

	// ListBySeller retrieves all products of a seller, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error)

	// UpdateStatus updates the status of a product.
	UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error
}
