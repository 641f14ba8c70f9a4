package client

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// CheckoutState is a phase of the listing payment flow.
type CheckoutState string

const (
	StateIdle                CheckoutState = "idle"
	StateInitiating          CheckoutState = "initiating"
	StateAwaitingUserPayment CheckoutState = "awaiting_user_payment"
	StateVerifying           CheckoutState = "verifying"
	StateSucceeded           CheckoutState = "succeeded"
	StateFailed              CheckoutState = "failed"
)

// verificationFailedMessage is shown when the server cannot confirm a
// submitted transaction. The attempt is terminal; retrying a
// verification against an already-submitted transaction risks
// inconsistent state, so the user is sent to support instead.
const verificationFailedMessage = "Payment verification failed. Please contact support."

// Listing identifies the product whose fee is being paid.
type Listing struct {
	ProductID string
	SellerID  string
	Title     string
}

// Navigator receives the post-payment navigation. paymentSuccess is
// true only after the server confirmed verification.
type Navigator func(path string, paymentSuccess bool)

// Notifier surfaces a user-visible error message.
type Notifier func(message string)

// paymentAPI is the slice of API the checkout needs.
type paymentAPI interface {
	InitiatePayment(ctx context.Context, productID, sellerID, paymentType string) (*PaymentIntent, error)
	VerifyPayment(ctx context.Context, reference string) error
}

// Checkout drives a listing payment through
// Idle -> Initiating -> AwaitingUserPayment -> Verifying -> Succeeded | Failed.
// One attempt at a time: Pay refuses to start while an attempt is
// running, so double triggers cannot mint duplicate payment intents.
type Checkout struct {
	bridge   Bridge
	payments paymentAPI
	fees     *FeeReader
	navigate Navigator
	notify   Notifier
	logger   *zap.SugaredLogger

	mu        sync.Mutex
	state     CheckoutState
	reference string
}

// NewCheckout creates a Checkout. navigate and notify may be nil.
func NewCheckout(bridge Bridge, payments paymentAPI, fees *FeeReader, navigate Navigator, notify Notifier, logger *zap.SugaredLogger) *Checkout {
	return &Checkout{
		bridge:   bridge,
		payments: payments,
		fees:     fees,
		navigate: navigate,
		notify:   notify,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current phase.
func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reference returns the payment reference issued for the current
// attempt, or empty before initiation completes.
func (c *Checkout) Reference() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reference
}

func (c *Checkout) setState(s CheckoutState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// begin claims the machine for a new attempt. Only Idle and Failed may
// start one; Failed is retryable and the retry gets a brand-new
// initiation, never a stale reference.
func (c *Checkout) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle && c.state != StateFailed {
		return ErrPaymentInProgress
	}
	c.state = StateInitiating
	c.reference = ""
	return nil
}

// LoadFee resolves the listing fee the payment page displays. Callers
// keep the pay action disabled until this succeeds; a missing
// configuration is not recoverable client-side.
func (c *Checkout) LoadFee(ctx context.Context) (*ListingFee, error) {
	return c.fees.Get(ctx)
}

// Pay runs one complete payment attempt for the listing. It returns nil
// only after the server confirmed verification and navigation was
// issued.
func (c *Checkout) Pay(ctx context.Context, listing Listing) error {
	if err := c.begin(); err != nil {
		// Another attempt is mid-flight; leave its state alone.
		return err
	}

	if c.bridge == nil || !c.bridge.Installed() {
		return c.fail(ErrProviderUnavailable, "World App is required to pay the listing fee.")
	}

	fee, err := c.fees.Get(ctx)
	if err != nil {
		return c.fail(err, "Unable to load listing fee")
	}

	intent, err := c.payments.InitiatePayment(ctx, listing.ProductID, listing.SellerID, fee.PaymentType)
	if err != nil {
		return c.fail(err, "Could not start the payment. Please try again.")
	}

	// The freshly issued id is the only valid reference from here on.
	c.mu.Lock()
	c.reference = intent.PaymentID
	c.state = StateAwaitingUserPayment
	c.mu.Unlock()

	amount, err := tokenToSmallestUnit(intent.Amount, intent.Currency)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %v", ErrPaymentRejected, err), "Could not start the payment. Please try again.")
	}

	// Resolves only when the user finishes or dismisses the payment
	// sheet; elapsed time alone is not a failure.
	res, err := c.bridge.Pay(ctx, PayInput{
		Reference:   intent.PaymentID,
		To:          intent.Recipient,
		Tokens:      []TokenAmount{{Symbol: intent.Currency, Amount: amount}},
		Description: fmt.Sprintf("Listing fee for %s", listing.Title),
	})
	if err != nil {
		return c.fail(fmt.Errorf("%w: %v", ErrPaymentRejected, err), "Payment was cancelled.")
	}

	// Verification always uses the reference issued at initiation; a
	// bridge result naming any other reference is rejected.
	if res.Reference != "" && res.Reference != intent.PaymentID {
		return c.fail(fmt.Errorf("%w: reference mismatch", ErrPaymentRejected), "Payment was cancelled.")
	}

	c.setState(StateVerifying)

	// The bridge result reflects submission, not settlement. Completion
	// requires the server to confirm the same reference.
	if err := c.payments.VerifyPayment(ctx, intent.PaymentID); err != nil {
		return c.fail(err, verificationFailedMessage)
	}

	c.setState(StateSucceeded)
	if c.navigate != nil {
		c.navigate("/product/"+listing.ProductID, true)
	}
	return nil
}

func (c *Checkout) fail(err error, message string) error {
	c.setState(StateFailed)
	if c.logger != nil {
		c.logger.Warnw("listing payment failed", "error", err)
	}
	if c.notify != nil {
		c.notify(message)
	}
	return err
}
