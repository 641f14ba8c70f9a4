package client

import (
	"context"
	"sync"
	"time"
)

// feeCacheTTL bounds how stale a cached listing fee may be.
const feeCacheTTL = 5 * time.Minute

// feeSource is the slice of API the reader needs.
type feeSource interface {
	ListingFee(ctx context.Context) (*ListingFee, error)
}

// FeeReader serves the listing fee with an in-process cache so
// navigating back to the payment page does not refetch.
type FeeReader struct {
	source feeSource
	now    func() time.Time

	mu        sync.Mutex
	cached    *ListingFee
	fetchedAt time.Time
}

// NewFeeReader creates a FeeReader over the given source.
func NewFeeReader(source feeSource) *FeeReader {
	return &FeeReader{source: source, now: time.Now}
}

// Get returns the current listing fee, from cache when fresh. Errors
// are never cached; a missing configuration stays ErrConfigurationMissing
// until the operator fixes it and a fresh fetch succeeds.
func (r *FeeReader) Get(ctx context.Context) (*ListingFee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.now().Sub(r.fetchedAt) < feeCacheTTL {
		fee := *r.cached
		return &fee, nil
	}

	fee, err := r.source.ListingFee(ctx)
	if err != nil {
		return nil, err
	}

	r.cached = fee
	r.fetchedAt = r.now()
	out := *fee
	return &out, nil
}

// Invalidate drops the cached fee.
func (r *FeeReader) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
