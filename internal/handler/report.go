package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"worldmarket/internal/domain"
	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// ReportHandler handles HTTP requests for product reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReportRequest is the HTTP request body for reporting a listing.
type CreateReportRequest struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
	Details   string `json:"details"`
}

// ReportResponse is the HTTP representation of a report.
type ReportResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details"`
	Status     string    `json:"status"`
	ResolvedBy string    `json:"resolved_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toReportResponse(r *domain.Report) ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		ReporterID: r.ReporterID,
		Reason:     r.Reason,
		Details:    r.Details,
		Status:     string(r.Status),
		ResolvedBy: r.ResolvedBy,
		CreatedAt:  r.CreatedAt,
	}
}

// Create handles POST /v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), service.CreateReportRequest{
		ProductID:  req.ProductID,
		ReporterID: middleware.UserID(c),
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toReportResponse(report))
}

// AdminList handles GET /v1/admin/reports
func (h *ReportHandler) AdminList(c *gin.Context) {
	reports, err := h.reportService.ListReports(c.Request.Context(), domain.ReportStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResponse(r))
	}
	respondJSON(c, http.StatusOK, out)
}

// AdminGet handles GET /v1/admin/reports/:id
func (h *ReportHandler) AdminGet(c *gin.Context) {
	report, err := h.reportService.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toReportResponse(report))
}

// ModerateReportRequest is the HTTP request body for an admin decision.
type ModerateReportRequest struct {
	Status   string `json:"status"`
	Takedown bool   `json:"takedown"`
}

// Moderate handles POST /v1/admin/reports/:id/moderate
func (h *ReportHandler) Moderate(c *gin.Context) {
	var req ModerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	report, err := h.reportService.ModerateReport(c.Request.Context(),
		c.Param("id"), domain.ReportStatus(req.Status), middleware.UserID(c), req.Takedown)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toReportResponse(report))
}
