package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// FavoriteHandler handles HTTP requests for bookmarked listings.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// AddFavoriteRequest is the HTTP request body for bookmarking a listing.
type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// FavoriteResponse is the HTTP representation of a favorite with its listing.
type FavoriteResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	CreatedAt time.Time       `json:"created_at"`
	Product   ProductResponse `json:"product"`
}

// Add handles POST /v1/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	fav, err := h.favoriteService.AddFavorite(c.Request.Context(), middleware.UserID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"id": fav.ID, "product_id": fav.ProductID})
}

// Remove handles DELETE /v1/favorites/:productId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	err := h.favoriteService.RemoveFavorite(c.Request.Context(), middleware.UserID(c), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	items, err := h.favoriteService.ListFavorites(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]FavoriteResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FavoriteResponse{
			ID:        item.Favorite.ID,
			ProductID: item.Favorite.ProductID,
			CreatedAt: item.Favorite.CreatedAt,
			Product:   toProductResponse(item.Product),
		})
	}
	respondJSON(c, http.StatusOK, out)
}
