package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// ProductRepository is a PostgreSQL implementation of repository.ProductRepository.
type ProductRepository struct {
	q Querier
}

// NewProductRepository creates a new PostgreSQL product repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{q: db}
}

// NewProductRepositoryWithTx creates a product repository using a transaction.
func NewProductRepositoryWithTx(tx *sql.Tx) *ProductRepository {
	return &ProductRepository{q: tx}
}

const productColumns = `id, seller_id, title, description, price, currency,
	category, country, images, status, created_at, updated_at`

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products
			(id, seller_id, title, description, price, currency, category, country, images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		product.ID,
		product.SellerID,
		product.Title,
		product.Description,
		product.Price,
		product.Currency,
		product.Category,
		product.Country,
		pq.Array(product.Images),
		product.Status,
	)
	return err
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	var images pq.StringArray
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.SellerID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.Category,
		&p.Country,
		&images,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Images = images
	return &p, nil
}

// List retrieves products matching the filter, newest first.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Country != "" {
		args = append(args, filter.Country)
		query += fmt.Sprintf(" AND country = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryProducts(ctx, query, args...)
}

// ListBySeller retrieves all products of a seller, newest first.
func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, sellerID)
}

// UpdateStatus updates the status of a product.
func (r *ProductRepository) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	query := `UPDATE products SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		var images pq.StringArray
		if err := rows.Scan(
			&p.ID,
			&p.SellerID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Currency,
			&p.Category,
			&p.Country,
			&images,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Images = images
		products = append(products, &p)
	}
	return products, rows.Err()
}
