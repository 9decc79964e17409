package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"accidenta/internal/models"
)

// MockReportRepository is an in-memory implementation of ReportRepository.
type MockReportRepository struct {
	reports map[string]models.Report
	mu      sync.RWMutex
}

// NewMockReportRepository creates a new instance of MockReportRepository.
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		reports: make(map[string]models.Report),
	}
}

// Create adds a new report.
func (r *MockReportRepository) Create(report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	r.reports[report.ID] = *report
	return nil
}

// ListByAuthor returns a newest-first page of reports authored by the user.
func (r *MockReportRepository) ListByAuthor(userID string, before *time.Time, limit int) ([]models.Report, error) {
	return r.page(func(report models.Report) bool { return report.UserID == userID }, before, limit), nil
}

// ListBySubjectDNI returns a newest-first page of reports naming the DNI.
func (r *MockReportRepository) ListBySubjectDNI(dni string, before *time.Time, limit int) ([]models.Report, error) {
	return r.page(func(report models.Report) bool { return report.DNI == dni }, before, limit), nil
}

// LastByAuthor returns the newest report authored by the user, or nil.
func (r *MockReportRepository) LastByAuthor(userID string) (*models.Report, error) {
	page := r.page(func(report models.Report) bool { return report.UserID == userID }, nil, 1)
	if len(page) == 0 {
		return nil, nil
	}
	return &page[0], nil
}

// CountSince counts reports created at or after `since`.
func (r *MockReportRepository) CountSince(since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, report := range r.reports {
		if since.IsZero() || !report.CreatedAt.Before(since) {
			total++
		}
	}
	return total, nil
}

// TopTypeSince returns the most frequent report type in the window, or nil.
func (r *MockReportRepository) TopTypeSince(since time.Time) (*TypeCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, report := range r.reports {
		if since.IsZero() || !report.CreatedAt.Before(since) {
			counts[report.Type]++
		}
	}

	var top *TypeCount
	for reportType, amount := range counts {
		if top == nil || amount > top.Amount || (amount == top.Amount && strings.Compare(reportType, top.Type) < 0) {
			top = &TypeCount{Type: reportType, Amount: amount}
		}
	}
	return top, nil
}

// LocationsSince returns the locations of all reports in the window.
func (r *MockReportRepository) LocationsSince(since time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]string, 0, len(r.reports))
	for _, report := range r.reports {
		if since.IsZero() || !report.CreatedAt.Before(since) {
			locations = append(locations, report.Location)
		}
	}
	return locations, nil
}

func (r *MockReportRepository) page(match func(models.Report) bool, before *time.Time, limit int) []models.Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Report
	for _, report := range r.reports {
		if !match(report) {
			continue
		}
		if before != nil && !report.CreatedAt.Before(*before) {
			continue
		}
		matched = append(matched, report)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
