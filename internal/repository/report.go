package repository

import (
	"context"

	"worldmarket/internal/domain"
)

// ReportRepository defines the persistence operations for product reports.
type ReportRepository interface {
	// Create persists a new report.
	Create(ctx context.Context, report *domain.Report) error

	// GetByID retrieves a report by ID.
	GetByID(ctx context.Context, id string) (*domain.Report, error)

	// ListByStatus retrieves reports in a given status, oldest first.
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error)

	// UpdateStatus updates the status of a report, recording who acted.
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, resolvedBy string) error
}
