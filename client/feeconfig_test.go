package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeFeeSource struct {
	fee   *ListingFee
	err   error
	calls int32
}

func (f *fakeFeeSource) ListingFee(ctx context.Context) (*ListingFee, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	fee := *f.fee
	return &fee, nil
}

func testFee() *ListingFee {
	return &ListingFee{Amount: 0.5, Currency: "WLD", PaymentType: "listing_fee", WalletAddress: "0xfee"}
}

func TestFeeReader_CachesWithinWindow(t *testing.T) {
	t.Parallel()

	source := &fakeFeeSource{fee: testFee()}
	reader := NewFeeReader(source)

	now := time.Now()
	reader.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		fee, err := reader.Get(context.Background())
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if fee.Amount != 0.5 {
			t.Errorf("expected 0.5, got %v", fee.Amount)
		}
	}
	if source.calls != 1 {
		t.Errorf("expected 1 fetch within the cache window, got %d", source.calls)
	}

	// Move past the window; the next read refetches.
	now = now.Add(feeCacheTTL + time.Second)
	if _, err := reader.Get(context.Background()); err != nil {
		t.Fatalf("read after expiry failed: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("expected refetch after expiry, got %d calls", source.calls)
	}
}

func TestFeeReader_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	source := &fakeFeeSource{err: ErrConfigurationMissing}
	reader := NewFeeReader(source)

	if _, err := reader.Get(context.Background()); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}

	// Operator fixes the configuration; the very next read succeeds.
	source.err = nil
	source.fee = testFee()
	fee, err := reader.Get(context.Background())
	if err != nil {
		t.Fatalf("read after fix failed: %v", err)
	}
	if fee.Amount != 0.5 {
		t.Errorf("expected configured fee, got %v", fee.Amount)
	}
}

func TestFeeReader_InvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	source := &fakeFeeSource{fee: testFee()}
	reader := NewFeeReader(source)

	if _, err := reader.Get(context.Background()); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	reader.Invalidate()
	if _, err := reader.Get(context.Background()); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("expected refetch after invalidation, got %d calls", source.calls)
	}
}
