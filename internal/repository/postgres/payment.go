package postgres

import (
	"context"
	"database/sql"
	"errors"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

const paymentColumns = `id, product_id, seller_id, amount, currency, payment_type,
	status, transaction_hash, failure_reason, created_at, updated_at`

func (r *PaymentRepository) scan(row *sql.Row) (*domain.ListingPayment, error) {
	var p domain.ListingPayment
	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.SellerID,
		&p.Amount,
		&p.Currency,
		&p.PaymentType,
		&p.Status,
		&p.TransactionHash,
		&p.FailureReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a new payment intent.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.ListingPayment) error {
	query := `
		INSERT INTO listing_payments
			(id, product_id, seller_id, amount, currency, payment_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.ProductID,
		payment.SellerID,
		payment.Amount,
		payment.Currency,
		payment.PaymentType,
		payment.Status,
	)
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.ListingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM listing_payments WHERE id = $1`

	payment, err := r.scan(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetPending retrieves the pending payment for a (product, seller, type) triple.
// Returns nil if no pending payment exists.
func (r *PaymentRepository) GetPending(ctx context.Context, productID, sellerID string, paymentType domain.PaymentType) (*domain.ListingPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM listing_payments
		WHERE product_id = $1 AND seller_id = $2 AND payment_type = $3 AND status = $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := r.scan(r.q.QueryRowContext(ctx, query, productID, sellerID, paymentType, domain.PaymentStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return payment, nil
}

// MarkFailed transitions a payment to failed with a reason.
func (r *PaymentRepository) MarkFailed(ctx context.Context, id, reason string) error {
	query := `
		UPDATE listing_payments
		SET status = $1, failure_reason = $2, updated_at = NOW()
		WHERE id = $3
	`
	return r.exec(ctx, query, domain.PaymentStatusFailed, reason, id)
}

// MarkSuccess transitions a payment to success, recording the transaction hash.
func (r *PaymentRepository) MarkSuccess(ctx context.Context, id, transactionHash string) error {
	query := `
		UPDATE listing_payments
		SET status = $1, transaction_hash = $2, updated_at = NOW()
		WHERE id = $3
	`
	return r.exec(ctx, query, domain.PaymentStatusSuccess, transactionHash, id)
}

// ListByProduct retrieves all payments for a product, newest first.
func (r *PaymentRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.ListingPayment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM listing_payments
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.ListingPayment
	for rows.Next() {
		var p domain.ListingPayment
		if err := rows.Scan(
			&p.ID,
			&p.ProductID,
			&p.SellerID,
			&p.Amount,
			&p.Currency,
			&p.PaymentType,
			&p.Status,
			&p.TransactionHash,
			&p.FailureReason,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
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
