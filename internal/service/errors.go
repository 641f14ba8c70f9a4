package service

import "errors"

var (
	// ErrInvalidProof is returned when the World ID proof payload is
	// incomplete.
	ErrInvalidProof = errors.New("invalid proof payload")

	// ErrVerificationFailed is returned when the identity provider
	// rejects a World ID proof.
	ErrVerificationFailed = errors.New("world id verification failed")

	// ErrConfigurationMissing is returned when the listing payment
	// configuration (or the configured token entry) is absent or
	// disabled. No default fee is ever assumed.
	ErrConfigurationMissing = errors.New("listing payment configuration missing")

	// ErrInvalidProductID is returned when product ID is empty.
	ErrInvalidProductID = errors.New("invalid product id")

	// ErrInvalidSellerID is returned when seller ID is empty.
	ErrInvalidSellerID = errors.New("invalid seller id")

	// ErrInvalidPaymentReference is returned when the payment reference
	// is empty.
	ErrInvalidPaymentReference = errors.New("invalid payment reference")

	// ErrNotListingOwner is returned when a user acts on a listing that
	// belongs to a different seller.
	ErrNotListingOwner = errors.New("listing belongs to a different seller")

	// ErrListingAlreadyActive is returned when initiating a listing
	// payment for a listing that is already active or sold.
	ErrListingAlreadyActive = errors.New("listing is already active")

	// ErrPaymentInProgress is returned when another initiation for the
	// same product holds the payment lock.
	ErrPaymentInProgress = errors.New("payment initiation already in progress")

	// ErrPaymentVerificationFailed is returned when the settled
	// transaction cannot be confirmed for the submitted reference.
	// Terminal for the attempt; the user is directed to support.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrInvalidListingTitle is returned when a listing has no title.
	ErrInvalidListingTitle = errors.New("invalid listing title")

	// ErrInvalidListingPrice is returned when a listing price is not positive.
	ErrInvalidListingPrice = errors.New("invalid listing price")

	// ErrInvalidStatusTransition is returned for a disallowed product
	// status change.
	ErrInvalidStatusTransition = errors.New("invalid listing status transition")

	// ErrNotSeller is returned when a non-seller attempts a seller action.
	ErrNotSeller = errors.New("user is not a seller")

	// ErrInvalidUsername is returned when a seller username is empty.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrConversationWithSelf is returned when a seller opens a chat on
	// their own listing.
	ErrConversationWithSelf = errors.New("cannot start a conversation on own listing")

	// ErrNotConversationMember is returned when a user touches a
	// conversation they are not part of.
	ErrNotConversationMember = errors.New("not a participant of this conversation")

	// ErrEmptyMessage is returned when a chat message has no content.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrInvalidReportReason is returned when a report has no reason.
	ErrInvalidReportReason = errors.New("invalid report reason")

	// ErrInvalidSessionToken is returned for a missing or bad session token.
	ErrInvalidSessionToken = errors.New("invalid session token")
)
