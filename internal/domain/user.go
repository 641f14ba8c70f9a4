package domain

import "time"

// VerificationLevel is the World ID verification level of a user.
// Orb is strictly stronger than device.
type VerificationLevel string

const (
	VerificationLevelDevice VerificationLevel = "device"
	VerificationLevelOrb    VerificationLevel = "orb"
)

// Role represents the access role of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile represents a verified World App user.
// A profile is created on first successful World ID verification and is
// keyed by nullifier hash, so a repeated verification of the same human
// resolves to the same profile.
type UserProfile struct {
	ID                string
	NullifierHash     string
	WalletAddress     string
	Username          string
	ProfilePictureURL string
	VerificationLevel VerificationLevel
	IsVerified        bool
	IsSeller          bool
	Role              Role
	Rating            float64
	CreatedAt         time.Time
}
