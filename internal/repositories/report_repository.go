package repositories

import (
	"time"

	"accidenta/internal/models"
)

// TypeCount is an aggregate row for the most frequent report type.
type TypeCount struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// ReportRepository defines the interface for report data access.
//
// The list methods implement cursor pagination: rows strictly older than
// `before` (when non-nil), newest first, at most `limit` rows.
type ReportRepository interface {
	Create(report *models.Report) error
	ListByAuthor(userID string, before *time.Time, limit int) ([]models.Report, error)
	ListBySubjectDNI(dni string, before *time.Time, limit int) ([]models.Report, error)
	LastByAuthor(userID string) (*models.Report, error)
	CountSince(since time.Time) (int64, error)
	TopTypeSince(since time.Time) (*TypeCount, error)
	LocationsSince(since time.Time) ([]string, error)
}
