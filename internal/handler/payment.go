package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/domain"
	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// PaymentHandler handles HTTP requests for listing payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiatePaymentRequest is the HTTP request body for payment initiation.
// Field names match what the mini-app sends.
type InitiatePaymentRequest struct {
	ProductID   string `json:"productId"`
	SellerID    string `json:"sellerId"`
	PaymentType string `json:"paymentType"`
}

// InitiatePaymentResponse is the HTTP response for payment initiation.
type InitiatePaymentResponse struct {
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Recipient string  `json:"recipient"`
}

// InitiatePayment handles POST /api/initiate-payment
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// The session, not the request body, decides who pays. A body that
	// names a different seller is rejected outright.
	if req.SellerID != "" && req.SellerID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "sellerId does not match session"})
		return
	}

	resp, err := h.paymentService.InitiatePayment(c.Request.Context(), service.InitiatePaymentRequest{
		ProductID:   req.ProductID,
		SellerID:    middleware.UserID(c),
		PaymentType: domain.PaymentType(req.PaymentType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, InitiatePaymentResponse{
		PaymentID: resp.Payment.ID,
		Amount:    resp.Payment.Amount,
		Currency:  resp.Payment.Currency,
		Recipient: resp.RecipientAddress,
	})
}

// VerifyPaymentRequest is the HTTP request body for payment verification.
type VerifyPaymentRequest struct {
	Reference string `json:"reference"`
}

// VerifyPaymentResponse is the HTTP response for payment verification.
type VerifyPaymentResponse struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}

// VerifyPayment handles POST /api/verify-payment
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.VerifyPayment(c.Request.Context(), req.Reference)
	if err != nil {
		// Unconfirmed transactions are a terminal "failed" result for
		// the attempt, not a transport error.
		if errors.Is(err, service.ErrPaymentVerificationFailed) {
			respondJSON(c, http.StatusOK, VerifyPaymentResponse{Status: "failed"})
			return
		}
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VerifyPaymentResponse{
		Status:          "success",
		TransactionHash: payment.TransactionHash,
	})
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Sellers may only read their own payments.
	if payment.SellerID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "payment belongs to a different seller"})
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"id":               payment.ID,
		"product_id":       payment.ProductID,
		"seller_id":        payment.SellerID,
		"amount":           payment.Amount,
		"currency":         payment.Currency,
		"payment_type":     payment.PaymentType,
		"status":           payment.Status,
		"transaction_hash": payment.TransactionHash,
	})
}
