// Package worldid is a thin client for the Worldcoin Developer Portal API.
// It covers the two calls the marketplace needs: World ID proof
// verification and MiniKit payment transaction lookup.
package worldid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://developer.worldcoin.org"

// ProofVerifier verifies World ID proofs.
type ProofVerifier interface {
	VerifyProof(ctx context.Context, req VerifyRequest) error
}

// TransactionReader looks up MiniKit payment transactions.
type TransactionReader interface {
	TransactionByReference(ctx context.Context, reference string) (*Transaction, error)
}

// VerifyRequest is the proof verification payload.
type VerifyRequest struct {
	NullifierHash     string `json:"nullifier_hash"`
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root,omitempty"`
	VerificationLevel string `json:"verification_level"`
	Action            string `json:"action"`
}

// Transaction is a MiniKit payment transaction as reported by the portal.
type Transaction struct {
	TransactionID     string `json:"transactionId"`
	TransactionHash   string `json:"transactionHash"`
	TransactionStatus string `json:"transactionStatus"`
	Reference         string `json:"reference"`
	FromWalletAddress string `json:"fromWalletAddress"`
	RecipientAddress  string `json:"recipientAddress"`
	InputToken        string `json:"inputToken"`
	InputTokenAmount  string `json:"inputTokenAmount"`
}

// Transaction statuses reported by the portal.
const (
	TransactionStatusPending = "pending"
	TransactionStatusMined   = "mined"
	TransactionStatusFailed  = "failed"
)

// Settled reports whether the transaction reached a successful terminal state.
func (t *Transaction) Settled() bool {
	return t.TransactionStatus == TransactionStatusMined
}

// APIError is a non-2xx portal response.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("worldid: %s (%s)", e.Detail, e.Code)
	}
	return fmt.Sprintf("worldid: request failed with status %d", e.StatusCode)
}

// Doer performs HTTP requests. Satisfied by *http.Client; swapped for a
// fake in tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the Developer Portal client.
type Config struct {
	BaseURL string
	AppID   string
	APIKey  string
}

// Client talks to the Developer Portal.
type Client struct {
	cfg  Config
	http Doer
}

// NewClient creates a Developer Portal client.
func NewClient(cfg Config, doer Doer) (*Client, error) {
	if cfg.AppID == "" {
		return nil, fmt.Errorf("worldid: app id is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{cfg: cfg, http: doer}, nil
}

// VerifyProof verifies a World ID proof for the configured app.
// A nil return means the portal accepted the proof.
func (c *Client) VerifyProof(ctx context.Context, req VerifyRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v2/verify/%s", c.cfg.BaseURL, url.PathEscape(c.cfg.AppID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return decodeAPIError(resp)
}

// TransactionByReference looks up a MiniKit payment transaction by the
// reference issued at initiation.
func (c *Client) TransactionByReference(ctx context.Context, reference string) (*Transaction, error) {
	endpoint := fmt.Sprintf("%s/api/v2/minikit/transaction/%s?app_id=%s&type=payment",
		c.cfg.BaseURL, url.PathEscape(reference), url.QueryEscape(c.cfg.AppID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	var tx Transaction
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	return apiErr
}

// Ensure interfaces are satisfied.
var (
	_ ProofVerifier     = (*Client)(nil)
	_ TransactionReader = (*Client)(nil)
)
