package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/redis"
	"worldmarket/internal/repository"
	"worldmarket/internal/worldid"
)

// paymentLockTTL bounds how long a single initiation may hold the
// per-product lock.
const paymentLockTTL = 10 * time.Second

// PaymentService handles listing payment initiation and verification.
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	productRepo   repository.ProductRepository
	configService *ConfigService
	locks         redis.LockStoreInterface
	transactions  worldid.TransactionReader
	notifications *NotificationService
	logger        *zap.SugaredLogger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	configService *ConfigService,
	locks redis.LockStoreInterface,
	transactions worldid.TransactionReader,
	notifications *NotificationService,
	logger *zap.SugaredLogger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		productRepo:   productRepo,
		configService: configService,
		locks:         locks,
		transactions:  transactions,
		notifications: notifications,
		logger:        logger,
	}
}

// InitiatePaymentRequest contains the parameters for initiating a listing payment.
type InitiatePaymentRequest struct {
	ProductID   string
	SellerID    string
	PaymentType domain.PaymentType
}

// InitiatePaymentResponse is the created intent plus the recipient wallet
// the client must pay into.
type InitiatePaymentResponse struct {
	Payment          *domain.ListingPayment
	RecipientAddress string
}

// InitiatePayment creates a fresh pending payment intent for a listing fee.
// Any prior pending intent for the same (product, seller, type) triple is
// superseded first, under a per-product lock, so the returned payment ID is
// always the single authoritative reference for the confirmation step.
func (s *PaymentService) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	if req.ProductID == "" {
		return nil, ErrInvalidProductID
	}
	if req.SellerID == "" {
		return nil, ErrInvalidSellerID
	}
	if req.PaymentType == "" {
		req.PaymentType = domain.PaymentTypeListingFee
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != req.SellerID {
		return nil, ErrNotListingOwner
	}
	if product.Status == domain.ProductStatusActive || product.Status == domain.ProductStatusSold {
		return nil, ErrListingAlreadyActive
	}

	fee, err := s.configService.GetListingFee(ctx)
	if err != nil {
		return nil, err
	}

	acquired, err := s.locks.AcquirePaymentLock(ctx, req.ProductID, paymentLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrPaymentInProgress
	}
	defer func() {
		if err := s.locks.ReleasePaymentLock(ctx, req.ProductID); err != nil {
			s.logger.Warnw("payment lock release failed", "product_id", req.ProductID, "error", err)
		}
	}()

	// Supersede, not reuse: a stale reference must never be verifiable
	// after a newer intent exists.
	if prior, err := s.paymentRepo.GetPending(ctx, req.ProductID, req.SellerID, req.PaymentType); err != nil {
		return nil, err
	} else if prior != nil {
		if err := s.paymentRepo.MarkFailed(ctx, prior.ID, "superseded by a newer payment intent"); err != nil {
			return nil, err
		}
		s.logger.Infow("pending payment superseded", "payment_id", prior.ID, "product_id", req.ProductID)
	}

	payment := &domain.ListingPayment{
		ID:          uuid.New().String(),
		ProductID:   req.ProductID,
		SellerID:    req.SellerID,
		Amount:      fee.Amount,
		Currency:    fee.Currency,
		PaymentType: req.PaymentType,
		Status:      domain.PaymentStatusPending,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Infow("payment initiated",
		"payment_id", payment.ID,
		"product_id", payment.ProductID,
		"amount", payment.Amount,
		"currency", payment.Currency,
	)

	return &InitiatePaymentResponse{Payment: payment, RecipientAddress: fee.WalletAddress}, nil
}

// VerifyPayment confirms the settled transaction for a payment reference.
// A single attempt: a reference whose transaction cannot be confirmed is
// ErrPaymentVerificationFailed, and the caller must not retry against an
// already-submitted on-chain transaction.
func (s *PaymentService) VerifyPayment(ctx context.Context, reference string) (*domain.ListingPayment, error) {
	if reference == "" {
		return nil, ErrInvalidPaymentReference
	}

	payment, err := s.paymentRepo.GetByID(ctx, reference)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case domain.PaymentStatusSuccess:
		// Already verified; reading again is harmless.
		return payment, nil
	case domain.PaymentStatusFailed:
		// Superseded or previously failed references stay dead.
		return payment, ErrPaymentVerificationFailed
	}

	tx, err := s.transactions.TransactionByReference(ctx, reference)
	if err != nil {
		// The intent stays pending: its on-chain state is unknown and
		// marking it failed here could contradict a mined transaction.
		s.logger.Errorw("transaction lookup failed", "reference", reference, "error", err)
		return payment, fmt.Errorf("%w: %v", ErrPaymentVerificationFailed, err)
	}

	if tx.Reference != "" && tx.Reference != reference {
		if err := s.paymentRepo.MarkFailed(ctx, payment.ID, "transaction reference mismatch"); err != nil {
			return nil, err
		}
		payment.Status = domain.PaymentStatusFailed
		return payment, ErrPaymentVerificationFailed
	}

	if !tx.Settled() {
		if tx.TransactionStatus == worldid.TransactionStatusFailed {
			if err := s.paymentRepo.MarkFailed(ctx, payment.ID, "transaction failed on chain"); err != nil {
				return nil, err
			}
			payment.Status = domain.PaymentStatusFailed
			_ = s.notifications.NotifyPaymentFailed(ctx, payment)
		}
		return payment, ErrPaymentVerificationFailed
	}

	if err := s.paymentRepo.MarkSuccess(ctx, payment.ID, tx.TransactionHash); err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatusSuccess
	payment.TransactionHash = tx.TransactionHash

	if err := s.activateProduct(ctx, payment.ProductID); err != nil {
		// The payment is settled either way; activation is retried by
		// support tooling if this ever fires.
		s.logger.Errorw("listing activation failed", "product_id", payment.ProductID, "error", err)
	}

	_ = s.notifications.NotifyPaymentSuccess(ctx, payment)

	s.logger.Infow("payment verified",
		"payment_id", payment.ID,
		"product_id", payment.ProductID,
		"transaction_hash", payment.TransactionHash,
	)

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.ListingPayment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentReference
	}
	return s.paymentRepo.GetByID(ctx, paymentID)
}

// activateProduct flips an unpaid listing to active once its fee settles.
func (s *PaymentService) activateProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Status != domain.ProductStatusInactive && product.Status != domain.ProductStatusPending {
		return nil
	}
	return s.productRepo.UpdateStatus(ctx, productID, domain.ProductStatusActive)
}
