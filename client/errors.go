package client

import "errors"

// Failure taxonomy for the sign-in and listing payment flows. Callers
// branch on these with errors.Is; wrapped errors keep the server or
// bridge message for display.
var (
	// ErrProviderUnavailable means the World App runtime is not present.
	// Fatal for the session: there is nothing to retry.
	ErrProviderUnavailable = errors.New("world app provider unavailable")

	// ErrVerificationFailed means the identity proof was rejected. The
	// user may retry the whole sign-in.
	ErrVerificationFailed = errors.New("identity verification failed")

	// ErrConfigurationMissing means the listing fee configuration is
	// absent or disabled. Payment must stay blocked until an operator
	// fixes it.
	ErrConfigurationMissing = errors.New("listing fee configuration missing")

	// ErrPaymentInitiationFailed covers network or server failures while
	// creating the payment intent. Retryable by the user.
	ErrPaymentInitiationFailed = errors.New("payment initiation failed")

	// ErrPaymentRejected means the user dismissed the payment sheet or
	// the bridge reported an error. Retryable by the user.
	ErrPaymentRejected = errors.New("payment rejected")

	// ErrPaymentVerificationFailed means the server could not confirm
	// the submitted transaction. Terminal for the attempt; never
	// auto-retried because the transaction may already be on chain.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrPaymentInProgress means a payment attempt is already running.
	ErrPaymentInProgress = errors.New("payment already in progress")

	// ErrNotLoggedIn means an authenticated call was made without a session.
	ErrNotLoggedIn = errors.New("not logged in")
)
