package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// UserRepository defines the persistence operations for user profiles.
type UserRepository interface {
	// Create persists a new user profile.
	Create(ctx context.Context, user *domain.UserProfile) error

	// GetByID retrieves a user profile by ID.
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)

	// GetByNullifierHash retrieves a user profile by its World ID
	// nullifier hash. Returns ErrNotFound when no profile exists.
	GetByNullifierHash(ctx context.Context, hash string) (*domain.UserProfile, error)

	// SetSeller marks a user profile as a seller with the given username.
	SetSeller(ctx context.Context, id, username string) error

	// GetAll retrieves all user profiles.
	GetAll(ctx context.Context) ([]*domain.UserProfile, error)
}
