package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/redis"
	"worldmarket/internal/repository"
)

// ConfigService reads platform configuration with a bounded-staleness
// Redis cache in front of Postgres.
type ConfigService struct {
	configRepo repository.ConfigRepository
	cache      redis.ConfigCacheInterface
	logger     *zap.SugaredLogger
}

// NewConfigService creates a new ConfigService.
func NewConfigService(configRepo repository.ConfigRepository, cache redis.ConfigCacheInterface, logger *zap.SugaredLogger) *ConfigService {
	return &ConfigService{configRepo: configRepo, cache: cache, logger: logger}
}

// ListingFee is the resolved fee for activating a listing.
type ListingFee struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentType   string  `json:"payment_type"`
	WalletAddress string  `json:"wallet_address"`
}

// GetListingFee resolves the current listing fee. A missing configuration
// record, or a missing/disabled token entry, is ErrConfigurationMissing:
// payment initiation must be blocked rather than guessing a fee.
func (s *ConfigService) GetListingFee(ctx context.Context) (*ListingFee, error) {
	var cfg domain.ListingFeeConfig
	hit, err := s.cache.GetConfig(ctx, domain.ConfigKeyListingPayment, &cfg)
	if err != nil {
		// Cache trouble degrades to a database read.
		s.logger.Warnw("config cache read failed", "key", domain.ConfigKeyListingPayment, "error", err)
	}

	if !hit {
		entry, err := s.configRepo.Get(ctx, domain.ConfigKeyListingPayment)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrConfigurationMissing
			}
			return nil, err
		}
		if err := json.Unmarshal(entry.Value, &cfg); err != nil {
			s.logger.Errorw("malformed listing payment config", "error", err)
			return nil, ErrConfigurationMissing
		}
		if err := s.cache.SetConfig(ctx, domain.ConfigKeyListingPayment, &cfg); err != nil {
			s.logger.Warnw("config cache write failed", "key", domain.ConfigKeyListingPayment, "error", err)
		}
	}

	fee, ok := cfg.Fee()
	if !ok {
		return nil, ErrConfigurationMissing
	}

	return &ListingFee{
		Amount:        fee.Amount,
		Currency:      cfg.Currency,
		PaymentType:   cfg.PaymentType,
		WalletAddress: fee.WalletAddress,
	}, nil
}

// GetSupportContact resolves the support contact document.
func (s *ConfigService) GetSupportContact(ctx context.Context) (*domain.SupportContact, error) {
	var contact domain.SupportContact
	hit, err := s.cache.GetConfig(ctx, domain.ConfigKeySupportContact, &contact)
	if err != nil {
		s.logger.Warnw("config cache read failed", "key", domain.ConfigKeySupportContact, "error", err)
	}
	if hit {
		return &contact, nil
	}

	entry, err := s.configRepo.Get(ctx, domain.ConfigKeySupportContact)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConfigurationMissing
		}
		return nil, err
	}
	if err := json.Unmarshal(entry.Value, &contact); err != nil {
		return nil, ErrConfigurationMissing
	}
	if err := s.cache.SetConfig(ctx, domain.ConfigKeySupportContact, &contact); err != nil {
		s.logger.Warnw("config cache write failed", "key", domain.ConfigKeySupportContact, "error", err)
	}
	return &contact, nil
}

// SetConfig upserts a configuration document and invalidates its cache
// entry. Admin only; enforced at the router.
func (s *ConfigService) SetConfig(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return errors.New("config value is not valid json")
	}

	if err := s.configRepo.Set(ctx, &domain.ConfigEntry{Key: key, Value: value}); err != nil {
		return err
	}
	if err := s.cache.InvalidateConfig(ctx, key); err != nil {
		s.logger.Warnw("config cache invalidation failed", "key", key, "error", err)
	}
	return nil
}
