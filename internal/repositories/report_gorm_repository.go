package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accidenta/internal/models"
)

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{db: db}
}

// Create inserts a new report.
func (r *GORMReportRepository) Create(report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// ListByAuthor returns a page of reports authored by the given user, newest
// first, strictly older than the cursor when one is supplied.
func (r *GORMReportRepository) ListByAuthor(userID string, before *time.Time, limit int) ([]models.Report, error) {
	query := r.db.Preload("User").Where("user_id = ?", userID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports by author: %w", err)
	}
	return reports, nil
}

// ListBySubjectDNI returns a page of reports whose subject DNI matches,
// regardless of author.
func (r *GORMReportRepository) ListBySubjectDNI(dni string, before *time.Time, limit int) ([]models.Report, error) {
	query := r.db.Where("dni = ?", dni)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports by subject DNI: %w", err)
	}
	return reports, nil
}

// LastByAuthor returns the most recent report authored by the user, or nil
// when they have authored none.
func (r *GORMReportRepository) LastByAuthor(userID string) (*models.Report, error) {
	var report models.Report
	err := r.db.Preload("User").Where("user_id = ?", userID).Order("created_at DESC").First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last report by author: %w", err)
	}
	return &report, nil
}

// CountSince counts reports created at or after `since`. A zero time counts
// every report.
func (r *GORMReportRepository) CountSince(since time.Time) (int64, error) {
	query := r.db.Model(&models.Report{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return total, nil
}

// TopTypeSince returns the most frequent report type in the window, or nil
// when there are no reports.
func (r *GORMReportRepository) TopTypeSince(since time.Time) (*TypeCount, error) {
	query := r.db.Model(&models.Report{}).
		Select("type AS type, COUNT(*) AS amount").
		Group("type").
		Order("amount DESC").
		Limit(1)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var rows []TypeCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get top report type: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// LocationsSince returns the free-text locations of all reports in the window.
func (r *GORMReportRepository) LocationsSince(since time.Time) ([]string, error) {
	query := r.db.Model(&models.Report{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var locations []string
	if err := query.Pluck("location", &locations).Error; err != nil {
		return nil, fmt.Errorf("failed to get report locations: %w", err)
	}
	return locations, nil
}
