package domain

import (
	"encoding/json"
	"time"
)

// Platform configuration keys. Values are arbitrary JSON documents kept in
// the platform_config table and mutated by the admin panel.
const (
	ConfigKeyListingPayment = "listing_payment_config"
	ConfigKeySupportContact = "support_contact"
)

// ConfigEntry is one row of the platform_config key-value table.
type ConfigEntry struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// TokenFee is the fee configuration for a single payment token.
type TokenFee struct {
	Amount        float64 `json:"amount"`
	WalletAddress string  `json:"wallet_address"`
	Enabled       bool    `json:"enabled"`
}

// ListingFeeConfig is the decoded listing_payment_config document: the fee
// charged for activating a listing, per accepted token.
type ListingFeeConfig struct {
	PaymentType string              `json:"payment_type"`
	Currency    string              `json:"currency"`
	Tokens      map[string]TokenFee `json:"tokens"`
}

// Fee returns the fee entry for the configured currency. The second return
// is false when the entry is absent or disabled; callers must treat that as
// missing configuration, not as a zero fee.
func (c *ListingFeeConfig) Fee() (TokenFee, bool) {
	fee, ok := c.Tokens[c.Currency]
	if !ok || !fee.Enabled {
		return TokenFee{}, false
	}
	return fee, true
}

// SupportContact is the decoded support_contact document.
type SupportContact struct {
	Email string `json:"email"`
	URL   string `json:"url"`
}
