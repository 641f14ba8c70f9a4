package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// PaymentRepository defines the persistence operations for listing payments.
type PaymentRepository interface {
	// Create persists a new payment intent.
	Create(ctx context.Context, payment *domain.ListingPayment) error

	// GetByID retrieves a payment by ID (the payment reference).
	GetByID(ctx context.Context, id string) (*domain.ListingPayment, error)

	// GetPending retrieves the pending payment for a (product, seller,
	// payment type) triple. Returns nil if none exists.
	GetPending(ctx context.Context, productID, sellerID string, paymentType domain.PaymentType) (*domain.ListingPayment, error)

	// MarkFailed transitions a payment to failed with a reason.
	MarkFailed(ctx context.Context, id, reason string) error

	// MarkSuccess transitions a payment to success, recording the
	// settled transaction hash.
	MarkSuccess(ctx context.Context, id, transactionHash string) error

	// ListByProduct retrieves all payments for a product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]*domain.ListingPayment, error)
}
