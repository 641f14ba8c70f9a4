package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests use a
// counting fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// User is the marketplace profile as the server reports it. Locally
// cached copies are never authoritative for sensitive operations; the
// server re-checks by user id.
type User struct {
	ID                string            `json:"id"`
	NullifierHash     string            `json:"nullifier_hash"`
	WalletAddress     string            `json:"wallet_address,omitempty"`
	Username          string            `json:"username"`
	VerificationLevel VerificationLevel `json:"verification_level"`
	IsVerified        bool              `json:"is_verified"`
	IsSeller          bool              `json:"is_seller"`
	Rating            float64           `json:"rating"`
}

// ListingFee is the fee a seller pays to activate a listing.
type ListingFee struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentType   string  `json:"payment_type"`
	WalletAddress string  `json:"wallet_address"`
}

// PaymentIntent is a pending listing payment created by the server.
type PaymentIntent struct {
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Recipient string  `json:"recipient"`
}

// API is the HTTP client for the marketplace backend. A session token,
// once set, is sent as a bearer credential on every request.
type API struct {
	baseURL string
	http    Doer

	mu    sync.RWMutex
	token string
}

// NewAPI creates an API client for the given base URL. A nil doer gets
// a default http.Client.
func NewAPI(baseURL string, doer Doer) *API {
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

// SetToken installs the session token used for authenticated calls.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// VerifyWorldID submits a proof to the server verify endpoint. On
// success it returns the (idempotently created) user and a session
// token.
func (a *API) VerifyWorldID(ctx context.Context, proof *VerifyResult) (*User, string, error) {
	body := map[string]string{
		"proof":              proof.Proof,
		"merkle_root":        proof.MerkleRoot,
		"nullifier_hash":     proof.NullifierHash,
		"verification_level": string(proof.Level),
	}
	var out struct {
		Success bool   `json:"success"`
		User    User   `json:"user"`
		Token   string `json:"token"`
	}
	if err := a.do(ctx, http.MethodPost, "/v1/auth/verify-world-id", body, &out); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if !out.Success {
		return nil, "", ErrVerificationFailed
	}
	return &out.User, out.Token, nil
}

// ListingFee fetches the current listing fee. A missing or disabled
// configuration is ErrConfigurationMissing.
func (a *API) ListingFee(ctx context.Context) (*ListingFee, error) {
	var fee ListingFee
	if err := a.do(ctx, http.MethodGet, "/api/config/listing-fee", nil, &fee); err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.status == http.StatusServiceUnavailable {
			return nil, ErrConfigurationMissing
		}
		return nil, err
	}
	return &fee, nil
}

// InitiatePayment creates a pending payment intent for a listing fee.
// The returned paymentId is authoritative for the confirmation step;
// callers discard any previously held id.
func (a *API) InitiatePayment(ctx context.Context, productID, sellerID, paymentType string) (*PaymentIntent, error) {
	body := map[string]string{
		"productId":   productID,
		"sellerId":    sellerID,
		"paymentType": paymentType,
	}
	var intent PaymentIntent
	if err := a.do(ctx, http.MethodPost, "/api/initiate-payment", body, &intent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentInitiationFailed, err)
	}
	return &intent, nil
}

// VerifyPayment asks the server to confirm the submitted transaction by
// reference. Anything but a "success" status is
// ErrPaymentVerificationFailed; the attempt is over either way.
func (a *API) VerifyPayment(ctx context.Context, reference string) error {
	body := map[string]string{"reference": reference}
	var out struct {
		Status          string `json:"status"`
		TransactionHash string `json:"transaction_hash"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/verify-payment", body, &out); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentVerificationFailed, err)
	}
	if out.Status != "success" {
		return ErrPaymentVerificationFailed
	}
	return nil
}

// apiError carries a non-2xx response.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("server returned status %d", e.status)
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var serverErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &serverErr)
		return &apiError{status: resp.StatusCode, message: serverErr.Error}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
