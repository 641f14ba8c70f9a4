package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// ReportService handles product reports and their moderation.
type ReportService struct {
	reportRepo    repository.ReportRepository
	productRepo   repository.ProductRepository
	notifications *NotificationService
	logger        *zap.SugaredLogger
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repository.ReportRepository, productRepo repository.ProductRepository, notifications *NotificationService, logger *zap.SugaredLogger) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		productRepo:   productRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateReportRequest contains the parameters for reporting a listing.
type CreateReportRequest struct {
	ProductID  string
	ReporterID string
	Reason     string
	Details    string
}

// CreateReport files a report against a listing.
func (s *ReportService) CreateReport(ctx context.Context, req CreateReportRequest) (*domain.Report, error) {
	if req.ProductID == "" {
		return nil, ErrInvalidProductID
	}
	if req.Reason == "" {
		return nil, ErrInvalidReportReason
	}

	// The listing must exist; reports against deleted products 404.
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:         uuid.New().String(),
		ProductID:  req.ProductID,
		ReporterID: req.ReporterID,
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     domain.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	_ = s.notifications.NotifyListingReported(ctx, report)
	return report, nil
}

// ListReports lists reports in a given status (admin view). An empty
// status defaults to open reports.
func (s *ReportService) ListReports(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error) {
	if status == "" {
		status = domain.ReportStatusOpen
	}
	return s.reportRepo.ListByStatus(ctx, status)
}

// GetReport retrieves a report by ID.
func (s *ReportService) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	return s.reportRepo.GetByID(ctx, reportID)
}

// reportTransitions are the allowed moderation moves.
var reportTransitions = map[domain.ReportStatus][]domain.ReportStatus{
	domain.ReportStatusOpen:      {domain.ReportStatusReviewing, domain.ReportStatusResolved, domain.ReportStatusDismissed},
	domain.ReportStatusReviewing: {domain.ReportStatusResolved, domain.ReportStatusDismissed},
}

// ModerateReport applies an admin decision. Resolving with takedown pulls
// the listing off the marketplace.
func (s *ReportService) ModerateReport(ctx context.Context, reportID string, status domain.ReportStatus, adminID string, takedown bool) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range reportTransitions[report.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.reportRepo.UpdateStatus(ctx, reportID, status, adminID); err != nil {
		return nil, err
	}
	report.Status = status
	report.ResolvedBy = adminID

	if status == domain.ReportStatusResolved && takedown {
		if err := s.productRepo.UpdateStatus(ctx, report.ProductID, domain.ProductStatusInactive); err != nil {
			s.logger.Errorw("report takedown failed", "report_id", reportID, "product_id", report.ProductID, "error", err)
		}
	}

	s.logger.Infow("report moderated", "report_id", reportID, "status", status, "admin_id", adminID)
	return report, nil
}
