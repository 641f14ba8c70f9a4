package postgres

import (
	"context"
	"database/sql"
	"errors"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, nullifier_hash, wallet_address, username, profile_picture_url,
	verification_level, is_verified, is_seller, role, rating, created_at`

func scanUser(row *sql.Row) (*domain.UserProfile, error) {
	var user domain.UserProfile
	err := row.Scan(
		&user.ID,
		&user.NullifierHash,
		&user.WalletAddress,
		&user.Username,
		&user.ProfilePictureURL,
		&user.VerificationLevel,
		&user.IsVerified,
		&user.IsSeller,
		&user.Role,
		&user.Rating,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new user profile.
func (r *UserRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles
			(id, nullifier_hash, wallet_address, username, profile_picture_url,
			 verification_level, is_verified, is_seller, role, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.NullifierHash,
		user.WalletAddress,
		user.Username,
		user.ProfilePictureURL,
		user.VerificationLevel,
		user.IsVerified,
		user.IsSeller,
		user.Role,
		user.Rating,
	)
	return err
}

// GetByID retrieves a user profile by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByNullifierHash retrieves a user profile by its nullifier hash.
func (r *UserRepository) GetByNullifierHash(ctx context.Context, hash string) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE nullifier_hash = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, hash))
}

// SetSeller marks a user profile as a seller with the given username.
func (r *UserRepository) SetSeller(ctx context.Context, id, username string) error {
	query := `UPDATE user_profiles SET is_seller = TRUE, username = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, username, id)
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

// GetAll retrieves all user profiles.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.UserProfile
	for rows.Next() {
		var user domain.UserProfile
		if err := rows.Scan(
			&user.ID,
			&user.NullifierHash,
			&user.WalletAddress,
			&user.Username,
			&user.ProfilePictureURL,
			&user.VerificationLevel,
			&user.IsVerified,
			&user.IsSeller,
			&user.Role,
			&user.Rating,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
