package domain

import "time"

// PaymentStatus represents the current status of a listing payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentType identifies what a payment pays for.
type PaymentType string

const (
	PaymentTypeListingFee PaymentType = "listing_fee"
)

// ListingPayment represents a payment intent for activating a listing.
// The payment ID doubles as the reference submitted to the wallet and later
// to verification: the reference returned at initiation must be the exact
// value verified, never one from an earlier attempt.
type ListingPayment struct {
	ID              string
	ProductID       string
	SellerID        string
	Amount          float64
	Currency        string
	PaymentType     PaymentType
	Status          PaymentStatus
	TransactionHash string
	FailureReason   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
