package domain

import "time"

// Favorite is a user's bookmark on a product listing.
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	CreatedAt time.Time
}
