package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/domain"
	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// ProductHandler handles HTTP requests for listings.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest is the HTTP request body for creating a listing.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Country     string   `json:"country"`
	Images      []string `json:"images"`
}

// ProductResponse is the HTTP representation of a listing.
type ProductResponse struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Country     string    `json:"country"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Category:    p.Category,
		Country:     p.Country,
		Images:      p.Images,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// Create handles POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), service.CreateProductRequest{
		SellerID:    middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    req.Category,
		Country:     req.Country,
		Images:      req.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toProductResponse(product))
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProductResponse(product))
}

// Browse handles GET /v1/products
func (h *ProductHandler) Browse(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	products, err := h.productService.BrowseProducts(c.Request.Context(),
		c.Query("category"), c.Query("country"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProductResponses(products))
}

// MyListings handles GET /v1/products/mine
func (h *ProductHandler) MyListings(c *gin.Context) {
	products, err := h.productService.MyListings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProductResponses(products))
}

// UpdateStatusRequest is the HTTP request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /v1/products/:id/status
func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	product, err := h.productService.UpdateStatus(c.Request.Context(),
		c.Param("id"), middleware.UserID(c), domain.ProductStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProductResponse(product))
}

// AdminList handles GET /v1/admin/products
func (h *ProductHandler) AdminList(c *gin.Context) {
	products, err := h.productService.AllListings(c.Request.Context(), domain.ProductStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProductResponses(products))
}
