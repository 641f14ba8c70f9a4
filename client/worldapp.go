package client

import (
	"context"
	"fmt"
	"math/big"
)

// VerificationLevel is the strength of a World ID verification.
type VerificationLevel string

const (
	LevelDevice VerificationLevel = "device"
	LevelOrb    VerificationLevel = "orb"
)

// VerifyInput is the request passed to the host container's verify command.
type VerifyInput struct {
	Action string
	Level  VerificationLevel
}

// VerifyResult is the proof bundle returned by the host container.
type VerifyResult struct {
	Proof         string
	MerkleRoot    string
	NullifierHash string
	Level         VerificationLevel
}

// TokenAmount is a token transfer amount in the token's smallest unit,
// encoded as a decimal string.
type TokenAmount struct {
	Symbol string
	Amount string
}

// PayInput is the request passed to the host container's pay command.
type PayInput struct {
	Reference   string
	To          string
	Tokens      []TokenAmount
	Description string
}

// PayResult is the terminal result of the host container's pay command.
// The command resolves only when the user finishes or dismisses the
// payment sheet; elapsed time alone never fails it.
type PayResult struct {
	Reference     string
	TransactionID string
}

// Bridge is the narrow surface of the World App container runtime. The
// production implementation talks to the MiniKit command channel; tests
// substitute a deterministic fake.
type Bridge interface {
	// Installed reports whether the host runtime is present. When false
	// every other call would fail, so callers check it first.
	Installed() bool
	Verify(ctx context.Context, in VerifyInput) (*VerifyResult, error)
	Pay(ctx context.Context, in PayInput) (*PayResult, error)
}

// IdentityProvider obtains World ID proofs from the bridge. It never
// authenticates by itself; the proof must go to the server verify
// endpoint via SessionStore.
type IdentityProvider struct {
	bridge Bridge
	action string
	level  VerificationLevel
}

// NewIdentityProvider creates an IdentityProvider for the given action
// and minimum verification level.
func NewIdentityProvider(bridge Bridge, action string, level VerificationLevel) *IdentityProvider {
	return &IdentityProvider{bridge: bridge, action: action, level: level}
}

// VerifyIdentity asks the host container for a proof. A missing runtime
// fails fast with ErrProviderUnavailable before any network call.
func (p *IdentityProvider) VerifyIdentity(ctx context.Context) (*VerifyResult, error) {
	if p.bridge == nil || !p.bridge.Installed() {
		return nil, ErrProviderUnavailable
	}
	res, err := p.bridge.Verify(ctx, VerifyInput{Action: p.action, Level: p.level})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	return res, nil
}

// tokenDecimals maps supported token symbols to their on-chain decimal
// precision.
var tokenDecimals = map[string]int64{
	"WLD":  18,
	"USDC": 6,
}

// tokenToSmallestUnit converts a human amount to the token's smallest
// unit as a decimal string, truncating any sub-unit remainder.
func tokenToSmallestUnit(amount float64, symbol string) (string, error) {
	decimals, ok := tokenDecimals[symbol]
	if !ok {
		return "", fmt.Errorf("unsupported token %q", symbol)
	}
	rat := new(big.Rat).SetFloat64(amount)
	if rat == nil || rat.Sign() < 0 {
		return "", fmt.Errorf("invalid token amount %v", amount)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(decimals), nil)
	rat.Mul(rat, new(big.Rat).SetInt(scale))
	return new(big.Int).Quo(rat.Num(), rat.Denom()).String(), nil
}
