package domain

import "time"

// ProductStatus represents the lifecycle state of a listing.
type ProductStatus string

const (
	// ProductStatusInactive is the state of a freshly created listing
	// whose listing fee has not been paid yet.
	ProductStatusInactive ProductStatus = "inactive"
	// ProductStatusPending is a paid listing awaiting review.
	ProductStatusPending ProductStatus = "pending"
	ProductStatusActive  ProductStatus = "active"
	ProductStatusPaused  ProductStatus = "paused"
	ProductStatusSold    ProductStatus = "sold"
)

// Product represents a marketplace listing.
type Product struct {
	ID          string
	SellerID    string
	Title       string
	Description string
	Price       float64
	Currency    string
	Category    string
	Country     string
	Images      []string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows product listings queries.
type ProductFilter struct {
	Category string
	Country  string
	Status   ProductStatus
	Limit    int
	Offset   int
}
