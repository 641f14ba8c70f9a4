package postgres

import (
	"context"
	"database/sql"
	"errors"

	"worldmarket/internal/domain"
	"worldmarket/internal/repository"
)

// ReportRepository is a PostgreSQL implementation of repository.ReportRepository.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new PostgreSQL report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, product_id, reporter_id, reason, details, status, resolved_by, created_at, updated_at`

// Create persists a new report.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, product_id, reporter_id, reason, details, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ProductID,
		report.ReporterID,
		report.Reason,
		report.Details,
		report.Status,
	)
	return err
}

// GetByID retrieves a report by ID.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	var rep domain.Report
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rep.ID,
		&rep.ProductID,
		&rep.ReporterID,
		&rep.Reason,
		&rep.Details,
		&rep.Status,
		&rep.ResolvedBy,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// ListByStatus retrieves reports in a given status, oldest first.
func (r *ReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(
			&rep.ID,
			&rep.ProductID,
			&rep.ReporterID,
			&rep.Reason,
			&rep.Details,
			&rep.Status,
			&rep.ResolvedBy,
			&rep.CreatedAt,
			&rep.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, &rep)
	}
	return reports, rows.Err()
}

// UpdateStatus updates the status of a report, recording who acted.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, resolvedBy string) error {
	query := `UPDATE reports SET status = $1, resolved_by = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, resolvedBy, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
