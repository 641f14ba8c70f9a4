package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
	"worldmarket/internal/service"
)

func newAuthService(userRepo *MockUserRepository, verifier *MockProofVerifier) *service.AuthService {
	return service.NewAuthService(
		userRepo,
		verifier,
		"marketplace-login",
		[]byte("test-secret"),
		time.Hour,
		zap.NewNop().Sugar(),
	)
}

func TestVerifyWorldID_CreatesProfileOnFirstVerification(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	verifier := NewMockProofVerifier()
	auth := newAuthService(userRepo, verifier)

	resp, err := auth.VerifyWorldID(context.Background(), service.VerifyWorldIDRequest{
		Proof:             "proof-data",
		MerkleRoot:        "root",
		NullifierHash:     "0xdeadbeefcafe",
		VerificationLevel: domain.VerificationLevelDevice,
	})
	if err != nil {
		t.Fatalf("expected verification to succeed, got %v", err)
	}

	if resp.User.NullifierHash != "0xdeadbeefcafe" {
		t.Errorf("expected nullifier hash to be stored, got %q", resp.User.NullifierHash)
	}
	if !resp.User.IsVerified {
		t.Error("expected user to be marked verified")
	}
	if resp.User.IsSeller {
		t.Error("device-verified user must not be a seller")
	}
	if resp.User.Username != "user_0xdeadbe" {
		t.Errorf("unexpected generated username %q", resp.User.Username)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if userRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 create call, got %d", userRepo.CreateCallCount)
	}
	if verifier.LastRequest().Action != "marketplace-login" {
		t.Errorf("expected configured action, got %q", verifier.LastRequest().Action)
	}
}

func TestVerifyWorldID_RepeatedNullifierReturnsSameProfile(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	verifier := NewMockProofVerifier()
	auth := newAuthService(userRepo, verifier)

	req := service.VerifyWorldIDRequest{
		Proof:             "proof-data",
		NullifierHash:     "0xrepeat",
		VerificationLevel: domain.VerificationLevelDevice,
	}

	first, err := auth.VerifyWorldID(context.Background(), req)
	if err != nil {
		t.Fatalf("first verification failed: %v", err)
	}
	second, err := auth.VerifyWorldID(context.Background(), req)
	if err != nil {
		t.Fatalf("second verification failed: %v", err)
	}

	if first.User.ID != second.User.ID {
		t.Errorf("expected same profile, got %q and %q", first.User.ID, second.User.ID)
	}
	if userRepo.CreateCallCount != 1 {
		t.Errorf("expected exactly 1 profile creation, got %d", userRepo.CreateCallCount)
	}
}

func TestVerifyWorldID_OrbVerificationGrantsSeller(t *testing.T) {
	t.Parallel()

	auth := newAuthService(NewMockUserRepository(), NewMockProofVerifier())

	resp, err := auth.VerifyWorldID(context.Background(), service.VerifyWorldIDRequest{
		Proof:             "proof-data",
		NullifierHash:     "0xorbuser",
		VerificationLevel: domain.VerificationLevelOrb,
	})
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if !resp.User.IsSeller {
		t.Error("orb-verified user should be a seller")
	}
}

func TestVerifyWorldID_RejectedProof(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	verifier := NewMockProofVerifier()
	verifier.VerifyError = errors.New("invalid merkle root")
	auth := newAuthService(userRepo, verifier)

	_, err := auth.VerifyWorldID(context.Background(), service.VerifyWorldIDRequest{
		Proof:         "bad-proof",
		NullifierHash: "0xbad",
	})
	if !errors.Is(err, service.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if userRepo.CreateCallCount != 0 {
		t.Error("no profile must be created for a rejected proof")
	}
}

func TestVerifyWorldID_MissingProof(t *testing.T) {
	t.Parallel()

	verifier := NewMockProofVerifier()
	auth := newAuthService(NewMockUserRepository(), verifier)

	_, err := auth.VerifyWorldID(context.Background(), service.VerifyWorldIDRequest{
		NullifierHash: "0xnoproof",
	})
	if !errors.Is(err, service.ErrInvalidProof) {
		t.Fatalf("expected ErrInvalidProof, got %v", err)
	}
	if verifier.VerifyCallCount != 0 {
		t.Error("portal must not be called without a proof")
	}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	auth := newAuthService(NewMockUserRepository(), NewMockProofVerifier())

	user := &domain.UserProfile{ID: "user-1", Role: domain.RoleAdmin}
	token, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("issuing token failed: %v", err)
	}

	sess, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("parsing token failed: %v", err)
	}
	if sess.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", sess.UserID)
	}
	if sess.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %q", sess.Role)
	}
}

func TestSessionToken_GarbageRejected(t *testing.T) {
	t.Parallel()

	auth := newAuthService(NewMockUserRepository(), NewMockProofVerifier())

	if _, err := auth.ParseToken("not-a-token"); !errors.Is(err, service.ErrInvalidSessionToken) {
		t.Fatalf("expected ErrInvalidSessionToken, got %v", err)
	}
}

func TestBecomeSeller_GrantsSellingToDeviceVerifiedUser(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, NewMockProofVerifier())
	userRepo.AddUser(&domain.UserProfile{
		ID:                "user-1",
		NullifierHash:     "0xdevice",
		Username:          "user_0xdevice",
		VerificationLevel: domain.VerificationLevelDevice,
		IsVerified:        true,
	})

	user, err := auth.BecomeSeller(context.Background(), "user-1", "alice")
	if err != nil {
		t.Fatalf("expected onboarding to succeed, got %v", err)
	}
	if !user.IsSeller {
		t.Error("expected seller flag set")
	}
	if user.Username != "alice" {
		t.Errorf("expected chosen username, got %q", user.Username)
	}
	if userRepo.SetSellerCallCount != 1 {
		t.Errorf("expected 1 set-seller call, got %d", userRepo.SetSellerCallCount)
	}

	stored, err := userRepo.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected user to exist, got %v", err)
	}
	if !stored.IsSeller || stored.Username != "alice" {
		t.Error("expected persisted profile updated")
	}
}

func TestBecomeSeller_EmptyUsernameRejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, NewMockProofVerifier())
	userRepo.AddUser(&domain.UserProfile{ID: "user-1", IsVerified: true})

	if _, err := auth.BecomeSeller(context.Background(), "user-1", "   "); !errors.Is(err, service.ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if userRepo.SetSellerCallCount != 0 {
		t.Error("no update may happen for an invalid username")
	}
}

func TestBecomeSeller_UnknownUser(t *testing.T) {
	t.Parallel()

	auth := newAuthService(NewMockUserRepository(), NewMockProofVerifier())

	if _, err := auth.BecomeSeller(context.Background(), "ghost", "alice"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBecomeSeller_RepeatWithSameUsernameChangesNothing(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, NewMockProofVerifier())
	userRepo.AddUser(&domain.UserProfile{ID: "user-1", IsVerified: true})

	if _, err := auth.BecomeSeller(context.Background(), "user-1", "alice"); err != nil {
		t.Fatalf("first onboarding failed: %v", err)
	}
	if _, err := auth.BecomeSeller(context.Background(), "user-1", "alice"); err != nil {
		t.Fatalf("repeated onboarding failed: %v", err)
	}
	if userRepo.SetSellerCallCount != 1 {
		t.Errorf("expected repeat to be a no-op, got %d set-seller calls", userRepo.SetSellerCallCount)
	}
}
