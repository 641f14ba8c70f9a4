package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/repository"
	"worldmarket/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidProof),
		errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrInvalidSellerID),
		errors.Is(err, service.ErrInvalidPaymentReference),
		errors.Is(err, service.ErrInvalidListingTitle),
		errors.Is(err, service.ErrInvalidListingPrice),
		errors.Is(err, service.ErrInvalidReportReason),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidSessionToken),
		errors.Is(err, service.ErrVerificationFailed):
		return http.StatusUnauthorized

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrNotListingOwner),
		errors.Is(err, service.ErrNotSeller),
		errors.Is(err, service.ErrNotConversationMember):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrListingAlreadyActive),
		errors.Is(err, service.ErrPaymentInProgress),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrConversationWithSelf):
		return http.StatusConflict

	// Payment verification failure is reported with a 402 so clients can
	// distinguish it from transport errors.
	case errors.Is(err, service.ErrPaymentVerificationFailed):
		return http.StatusPaymentRequired

	// Operator-fixable configuration problems
	case errors.Is(err, service.ErrConfigurationMissing):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
