package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
	"worldmarket/internal/worldid"
)

// AuthService verifies World ID proofs and manages sessions.
// The verification endpoint is the sole authority that marks a nullifier
// hash as verified; locally cached user records are never trusted for
// sensitive operations.
type AuthService struct {
	userRepo repository.UserRepository
	verifier worldid.ProofVerifier
	action   string
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.SugaredLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, verifier worldid.ProofVerifier, action string, jwtSecret []byte, tokenTTL time.Duration, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		action:   action,
		secret:   jwtSecret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// VerifyWorldIDRequest contains the proof forwarded by the mini-app.
type VerifyWorldIDRequest struct {
	Proof             string
	MerkleRoot        string
	NullifierHash     string
	VerificationLevel domain.VerificationLevel
}

// VerifyWorldIDResponse is the verified user plus a session token.
type VerifyWorldIDResponse struct {
	User  *domain.UserProfile
	Token string
}

// VerifyWorldID verifies a World ID proof and returns the user profile for
// its nullifier hash, creating one on first verification. Idempotent: a
// repeated nullifier hash resolves to the existing profile.
func (s *AuthService) VerifyWorldID(ctx context.Context, req VerifyWorldIDRequest) (*VerifyWorldIDResponse, error) {
	if req.Proof == "" || req.NullifierHash == "" {
		return nil, ErrInvalidProof
	}
	if req.VerificationLevel != domain.VerificationLevelOrb {
		req.VerificationLevel = domain.VerificationLevelDevice
	}

	err := s.verifier.VerifyProof(ctx, worldid.VerifyRequest{
		NullifierHash:     req.NullifierHash,
		Proof:             req.Proof,
		MerkleRoot:        req.MerkleRoot,
		VerificationLevel: string(req.VerificationLevel),
		Action:            s.action,
	})
	if err != nil {
		s.logger.Warnw("world id proof rejected", "nullifier_hash", req.NullifierHash, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	user, err := s.userRepo.GetByNullifierHash(ctx, req.NullifierHash)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if user == nil {
		user = &domain.UserProfile{
			ID:                uuid.New().String(),
			NullifierHash:     req.NullifierHash,
			Username:          sellerUsername(req.NullifierHash),
			VerificationLevel: req.VerificationLevel,
			IsVerified:        true,
			// Orb-verified humans may sell right away.
			IsSeller: req.VerificationLevel == domain.VerificationLevelOrb,
			Role:     domain.RoleUser,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Infow("user profile created", "user_id", user.ID, "verification_level", user.VerificationLevel)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &VerifyWorldIDResponse{User: user, Token: token}, nil
}

// BecomeSeller turns an existing profile into a seller with the chosen
// username. Device-verified users go through this before they can list;
// orb-verified users are sellers from creation but may still rename here.
// Idempotent: repeating the call with the same username changes nothing.
func (s *AuthService) BecomeSeller(ctx context.Context, userID, username string) (*domain.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsSeller && user.Username == username {
		return user, nil
	}

	if err := s.userRepo.SetSeller(ctx, userID, username); err != nil {
		return nil, err
	}
	user.IsSeller = true
	user.Username = username
	s.logger.Infow("seller profile created", "user_id", userID, "username", username)
	return user, nil
}

// GetUser loads a user profile by ID. Sensitive operations re-validate
// through this rather than trusting client-persisted state.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// sessionClaims are the JWT claims carried by a session token.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for a user.
func (s *AuthService) IssueToken(user *domain.UserProfile) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Session is the identity carried by a validated token.
type Session struct {
	UserID string
	Role   domain.Role
}

// ParseToken validates a session token and returns its session.
func (s *AuthService) ParseToken(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSessionToken
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidSessionToken
	}

	return &Session{UserID: claims.Subject, Role: domain.Role(claims.Role)}, nil
}

func sellerUsername(nullifierHash string) string {
	h := nullifierHash
	if len(h) > 8 {
		h = h[:8]
	}
	return "user_" + h
}
