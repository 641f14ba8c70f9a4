package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/service"
	"worldmarket/internal/worldid"
)

const listingFeeDoc = `{
	"payment_type": "listing_fee",
	"currency": "WLD",
	"tokens": {
		"WLD": {"amount": 0.5, "wallet_address": "0xfee", "enabled": true}
	}
}`

type paymentFixture struct {
	userRepo     *MockUserRepository
	productRepo  *MockProductRepository
	paymentRepo  *MockPaymentRepository
	configRepo   *MockConfigRepository
	cache        *MockConfigCache
	locks        *MockLockStore
	transactions *MockTransactionReader
	service      *service.PaymentService
}

func newPaymentFixture() *paymentFixture {
	logger := zap.NewNop().Sugar()
	f := &paymentFixture{
		userRepo:     NewMockUserRepository(),
		productRepo:  NewMockProductRepository(),
		paymentRepo:  NewMockPaymentRepository(),
		configRepo:   NewMockConfigRepository(),
		cache:        NewMockConfigCache(),
		locks:        NewMockLockStore(),
		transactions: NewMockTransactionReader(),
	}
	f.configRepo.SetEntry(domain.ConfigKeyListingPayment, json.RawMessage(listingFeeDoc))

	configService := service.NewConfigService(f.configRepo, f.cache, logger)
	notifications := service.NewNotificationService(logger)
	f.service = service.NewPaymentService(
		f.paymentRepo, f.productRepo, configService, f.locks, f.transactions, notifications, logger,
	)
	return f
}

func (f *paymentFixture) addInactiveProduct(id, sellerID string) {
	f.productRepo.AddProduct(&domain.Product{
		ID:       id,
		SellerID: sellerID,
		Title:    "Bike",
		Price:    25,
		Currency: "WLD",
		Status:   domain.ProductStatusInactive,
	})
}

func TestInitiatePayment_CreatesPendingIntentWithConfiguredFee(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	resp, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("initiation failed: %v", err)
	}

	if resp.Payment.Status != domain.PaymentStatusPending {
		t.Errorf("expected pending intent, got %q", resp.Payment.Status)
	}
	if resp.Payment.Amount != 0.5 || resp.Payment.Currency != "WLD" {
		t.Errorf("expected 0.5 WLD fee, got %v %s", resp.Payment.Amount, resp.Payment.Currency)
	}
	if resp.RecipientAddress != "0xfee" {
		t.Errorf("expected configured wallet, got %q", resp.RecipientAddress)
	}
	if f.locks.ReleaseCallCount != 1 {
		t.Error("payment lock must be released after initiation")
	}
}

func TestInitiatePayment_SupersedesPriorPendingIntent(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	first, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("first initiation failed: %v", err)
	}
	second, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("second initiation failed: %v", err)
	}

	if first.Payment.ID == second.Payment.ID {
		t.Fatal("second initiation must mint a new payment id")
	}

	prior := f.paymentRepo.GetPayment(first.Payment.ID)
	if prior.Status != domain.PaymentStatusFailed {
		t.Errorf("prior intent should be superseded, got %q", prior.Status)
	}

	// A superseded reference can never verify again.
	_, err = f.service.VerifyPayment(context.Background(), first.Payment.ID)
	if !errors.Is(err, service.ErrPaymentVerificationFailed) {
		t.Fatalf("expected stale reference to fail verification, got %v", err)
	}
}

func TestInitiatePayment_RejectsNonOwner(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	_, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "someone-else",
	})
	if !errors.Is(err, service.ErrNotListingOwner) {
		t.Fatalf("expected ErrNotListingOwner, got %v", err)
	}
	if f.paymentRepo.CreateCallCount != 0 {
		t.Error("no intent must be created for a non-owner")
	}
}

func TestInitiatePayment_RejectsActiveListing(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.productRepo.AddProduct(&domain.Product{
		ID:       "product-1",
		SellerID: "seller-1",
		Status:   domain.ProductStatusActive,
	})

	_, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if !errors.Is(err, service.ErrListingAlreadyActive) {
		t.Fatalf("expected ErrListingAlreadyActive, got %v", err)
	}
}

func TestInitiatePayment_MissingFeeConfigBlocks(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")
	f.configRepo.Clear()

	_, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if !errors.Is(err, service.ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
	if f.paymentRepo.CreateCallCount != 0 {
		t.Error("no intent may exist without a configured fee")
	}
}

func TestInitiatePayment_ConcurrentAttemptRejected(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")
	f.locks.ForceBusy = true

	_, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if !errors.Is(err, service.ErrPaymentInProgress) {
		t.Fatalf("expected ErrPaymentInProgress, got %v", err)
	}
}

func TestVerifyPayment_SettledTransactionActivatesListing(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	resp, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("initiation failed: %v", err)
	}

	f.transactions.AddTransaction(&worldid.Transaction{
		Reference:         resp.Payment.ID,
		TransactionHash:   "0xhash",
		TransactionStatus: worldid.TransactionStatusMined,
	})

	payment, err := f.service.VerifyPayment(context.Background(), resp.Payment.ID)
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if payment.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected success, got %q", payment.Status)
	}
	if payment.TransactionHash != "0xhash" {
		t.Errorf("expected settled hash, got %q", payment.TransactionHash)
	}
	if got := f.productRepo.GetProduct("product-1").Status; got != domain.ProductStatusActive {
		t.Errorf("expected listing activated, got %q", got)
	}
}

func TestVerifyPayment_AlreadyVerifiedIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	resp, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("initiation failed: %v", err)
	}
	f.transactions.AddTransaction(&worldid.Transaction{
		Reference:         resp.Payment.ID,
		TransactionStatus: worldid.TransactionStatusMined,
	})

	if _, err := f.service.VerifyPayment(context.Background(), resp.Payment.ID); err != nil {
		t.Fatalf("first verification failed: %v", err)
	}
	if _, err := f.service.VerifyPayment(context.Background(), resp.Payment.ID); err != nil {
		t.Fatalf("re-verification of a settled payment must succeed, got %v", err)
	}
	if f.paymentRepo.MarkSuccessCallCount != 1 {
		t.Errorf("expected a single success transition, got %d", f.paymentRepo.MarkSuccessCallCount)
	}
}

func TestVerifyPayment_UnsettledTransactionFails(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	resp, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("initiation failed: %v", err)
	}
	f.transactions.AddTransaction(&worldid.Transaction{
		Reference:         resp.Payment.ID,
		TransactionStatus: worldid.TransactionStatusPending,
	})

	_, err = f.service.VerifyPayment(context.Background(), resp.Payment.ID)
	if !errors.Is(err, service.ErrPaymentVerificationFailed) {
		t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
	}

	// Still pending on chain: the intent must not be burned.
	if got := f.paymentRepo.GetPayment(resp.Payment.ID).Status; got != domain.PaymentStatusPending {
		t.Errorf("expected intent to stay pending, got %q", got)
	}
	if got := f.productRepo.GetProduct("product-1").Status; got != domain.ProductStatusInactive {
		t.Errorf("listing must stay inactive, got %q", got)
	}
}

func TestVerifyPayment_FailedOnChainMarksIntentFailed(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	resp, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("initiation failed: %v", err)
	}
	f.transactions.AddTransaction(&worldid.Transaction{
		Reference:         resp.Payment.ID,
		TransactionStatus: worldid.TransactionStatusFailed,
	})

	_, err = f.service.VerifyPayment(context.Background(), resp.Payment.ID)
	if !errors.Is(err, service.ErrPaymentVerificationFailed) {
		t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
	}
	if got := f.paymentRepo.GetPayment(resp.Payment.ID).Status; got != domain.PaymentStatusFailed {
		t.Errorf("expected intent marked failed, got %q", got)
	}
}

func TestVerifyPayment_PortalOutageKeepsIntentPending(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.addInactiveProduct("product-1", "seller-1")

	resp, err := f.service.InitiatePayment(context.Background(), service.InitiatePaymentRequest{
		ProductID: "product-1",
		SellerID:  "seller-1",
	})
	if err != nil {
		t.Fatalf("initiation failed: %v", err)
	}
	f.transactions.LookupError = errors.New("portal unreachable")

	_, err = f.service.VerifyPayment(context.Background(), resp.Payment.ID)
	if !errors.Is(err, service.ErrPaymentVerificationFailed) {
		t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
	}

	// Unknown on-chain state: the intent must not be marked failed.
	if got := f.paymentRepo.GetPayment(resp.Payment.ID).Status; got != domain.PaymentStatusPending {
		t.Errorf("expected intent to stay pending, got %q", got)
	}
}
