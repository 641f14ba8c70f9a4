package domain

import "time"

// ReportStatus represents the moderation state of a product report.
type ReportStatus string

const (
	ReportStatusOpen      ReportStatus = "open"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Report represents a user report against a product listing.
type Report struct {
	ID         string
	ProductID  string
	ReporterID string
	Reason     string
	Details    string
	Status     ReportStatus
	ResolvedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
