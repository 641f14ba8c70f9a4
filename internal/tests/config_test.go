package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/service"
)

func newConfigService(repo *MockConfigRepository, cache *MockConfigCache) *service.ConfigService {
	return service.NewConfigService(repo, cache, zap.NewNop().Sugar())
}

func TestGetListingFee_ReadsConfiguredFee(t *testing.T) {
	t.Parallel()

	repo := NewMockConfigRepository()
	repo.SetEntry(domain.ConfigKeyListingPayment, json.RawMessage(listingFeeDoc))
	svc := newConfigService(repo, NewMockConfigCache())

	fee, err := svc.GetListingFee(context.Background())
	if err != nil {
		t.Fatalf("expected fee, got %v", err)
	}
	if fee.Amount != 0.5 || fee.Currency != "WLD" {
		t.Errorf("expected 0.5 WLD, got %v %s", fee.Amount, fee.Currency)
	}
	if fee.WalletAddress != "0xfee" {
		t.Errorf("expected configured wallet, got %q", fee.WalletAddress)
	}
}

func TestGetListingFee_MissingRecord(t *testing.T) {
	t.Parallel()

	svc := newConfigService(NewMockConfigRepository(), NewMockConfigCache())

	_, err := svc.GetListingFee(context.Background())
	if !errors.Is(err, service.ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestGetListingFee_DisabledTokenTreatedAsMissing(t *testing.T) {
	t.Parallel()

	repo := NewMockConfigRepository()
	repo.SetEntry(domain.ConfigKeyListingPayment, json.RawMessage(`{
		"payment_type": "listing_fee",
		"currency": "WLD",
		"tokens": {"WLD": {"amount": 0.5, "wallet_address": "0xfee", "enabled": false}}
	}`))
	svc := newConfigService(repo, NewMockConfigCache())

	_, err := svc.GetListingFee(context.Background())
	if !errors.Is(err, service.ErrConfigurationMissing) {
		t.Fatalf("a disabled token must not yield a fee, got %v", err)
	}
}

func TestGetListingFee_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()

	repo := NewMockConfigRepository()
	repo.SetEntry(domain.ConfigKeyListingPayment, json.RawMessage(listingFeeDoc))
	cache := NewMockConfigCache()
	svc := newConfigService(repo, cache)

	if _, err := svc.GetListingFee(context.Background()); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if _, err := svc.GetListingFee(context.Background()); err != nil {
		t.Fatalf("second read failed: %v", err)
	}

	if repo.GetCallCount != 1 {
		t.Errorf("expected 1 repository read, got %d", repo.GetCallCount)
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected 1 cache fill, got %d", cache.SetCallCount)
	}
}

func TestGetListingFee_CacheOutageDegradesToRepository(t *testing.T) {
	t.Parallel()

	repo := NewMockConfigRepository()
	repo.SetEntry(domain.ConfigKeyListingPayment, json.RawMessage(listingFeeDoc))
	cache := NewMockConfigCache()
	cache.GetError = errors.New("redis down")
	cache.SetError = errors.New("redis down")
	svc := newConfigService(repo, cache)

	fee, err := svc.GetListingFee(context.Background())
	if err != nil {
		t.Fatalf("cache trouble must not block the read, got %v", err)
	}
	if fee.Amount != 0.5 {
		t.Errorf("expected configured fee, got %v", fee.Amount)
	}
}

func TestSetConfig_InvalidatesCache(t *testing.T) {
	t.Parallel()

	repo := NewMockConfigRepository()
	repo.SetEntry(domain.ConfigKeyListingPayment, json.RawMessage(listingFeeDoc))
	cache := NewMockConfigCache()
	svc := newConfigService(repo, cache)

	// Warm the cache.
	if _, err := svc.GetListingFee(context.Background()); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	updated := `{
		"payment_type": "listing_fee",
		"currency": "WLD",
		"tokens": {"WLD": {"amount": 1.0, "wallet_address": "0xfee", "enabled": true}}
	}`
	if err := svc.SetConfig(context.Background(), domain.ConfigKeyListingPayment, json.RawMessage(updated)); err != nil {
		t.Fatalf("config update failed: %v", err)
	}
	if cache.InvalidateCallCount != 1 {
		t.Errorf("expected cache invalidation, got %d calls", cache.InvalidateCallCount)
	}

	fee, err := svc.GetListingFee(context.Background())
	if err != nil {
		t.Fatalf("read after update failed: %v", err)
	}
	if fee.Amount != 1.0 {
		t.Errorf("expected updated fee 1.0, got %v", fee.Amount)
	}
}

func TestSetConfig_RejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	svc := newConfigService(NewMockConfigRepository(), NewMockConfigCache())

	if err := svc.SetConfig(context.Background(), domain.ConfigKeyListingPayment, json.RawMessage(`{broken`)); err == nil {
		t.Fatal("expected invalid json to be rejected")
	}
}

func TestGetSupportContact(t *testing.T) {
	t.Parallel()

	repo := NewMockConfigRepository()
	repo.SetEntry(domain.ConfigKeySupportContact, json.RawMessage(`{"email":"support@example.com","url":"https://example.com/help"}`))
	svc := newConfigService(repo, NewMockConfigCache())

	contact, err := svc.GetSupportContact(context.Background())
	if err != nil {
		t.Fatalf("expected contact, got %v", err)
	}
	if contact.Email != "support@example.com" {
		t.Errorf("unexpected email %q", contact.Email)
	}
}
