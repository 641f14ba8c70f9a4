package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/domain"
	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// AuthHandler handles HTTP requests for identity verification and sessions.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// VerifyWorldIDRequest is the HTTP request body for proof verification.
type VerifyWorldIDRequest struct {
	Proof             string `json:"proof"`
	MerkleRoot        string `json:"merkle_root"`
	NullifierHash     string `json:"nullifier_hash"`
	VerificationLevel string `json:"verification_level"`
}

// UserResponse is the HTTP representation of a user profile.
type UserResponse struct {
	ID                string  `json:"id"`
	NullifierHash     string  `json:"nullifier_hash"`
	WalletAddress     string  `json:"wallet_address,omitempty"`
	Username          string  `json:"username"`
	VerificationLevel string  `json:"verification_level"`
	IsVerified        bool    `json:"is_verified"`
	IsSeller          bool    `json:"is_seller"`
	Rating            float64 `json:"rating"`
}

// VerifyWorldIDResponse is the HTTP response for proof verification.
type VerifyWorldIDResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

func toUserResponse(u *domain.UserProfile) UserResponse {
	return UserResponse{
		ID:                u.ID,
		NullifierHash:     u.NullifierHash,
		WalletAddress:     u.WalletAddress,
		Username:          u.Username,
		VerificationLevel: string(u.VerificationLevel),
		IsVerified:        u.IsVerified,
		IsSeller:          u.IsSeller,
		Rating:            u.Rating,
	}
}

// VerifyWorldID handles POST /v1/auth/verify-world-id
func (h *AuthHandler) VerifyWorldID(c *gin.Context) {
	var req VerifyWorldIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.authService.VerifyWorldID(c.Request.Context(), service.VerifyWorldIDRequest{
		Proof:             req.Proof,
		MerkleRoot:        req.MerkleRoot,
		NullifierHash:     req.NullifierHash,
		VerificationLevel: domain.VerificationLevel(req.VerificationLevel),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VerifyWorldIDResponse{
		Success: true,
		User:    toUserResponse(resp.User),
		Token:   resp.Token,
	})
}

// BecomeSellerRequest is the HTTP request body for seller onboarding.
type BecomeSellerRequest struct {
	Username string `json:"username"`
}

// BecomeSeller handles POST /v1/auth/become-seller
func (h *AuthHandler) BecomeSeller(c *gin.Context) {
	var req BecomeSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.authService.BecomeSeller(c.Request.Context(), middleware.UserID(c), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}
