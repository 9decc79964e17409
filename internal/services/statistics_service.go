package services

import (
	"strings"
	"time"

	"accidenta/internal/repositories"
)

// ZoneCount is an aggregate row for the most affected zone.
type ZoneCount struct {
	Zone   string `json:"zone"`
	Amount int64  `json:"amount"`
}

// StatisticsService computes aggregate accident statistics over a time window.
type StatisticsService struct {
	reportRepo repositories.ReportRepository
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(reportRepo repositories.ReportRepository) *StatisticsService {
	return &StatisticsService{reportRepo: reportRepo}
}

// TotalReports counts the reports in the window ("day", "week" or "month";
// anything else means no window).
func (s *StatisticsService) TotalReports(rng string) (int64, error) {
	return s.reportRepo.CountSince(sinceFor(rng))
}

// TopType returns the most frequent report type in the window, or nil when
// there are no reports.
func (s *StatisticsService) TopType(rng string) (*repositories.TypeCount, error) {
	return s.reportRepo.TopTypeSince(sinceFor(rng))
}

// TopZone returns the most affected zone in the window, or nil when there are
// no reports. The zone is the second comma-separated segment of the free-text
// location (e.g. "Av. Corrientes 1234, Balvanera, CABA" -> "Balvanera").
func (s *StatisticsService) TopZone(rng string) (*ZoneCount, error) {
	locations, err := s.reportRepo.LocationsSince(sinceFor(rng))
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, nil
	}

	counts := make(map[string]int64)
	for _, location := range locations {
		counts[zoneOf(location)]++
	}

	var top *ZoneCount
	for zone, amount := range counts {
		if top == nil || amount > top.Amount || (amount == top.Amount && zone < top.Zone) {
			top = &ZoneCount{Zone: zone, Amount: amount}
		}
	}
	return top, nil
}

func zoneOf(location string) string {
	parts := strings.Split(location, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func sinceFor(rng string) time.Time {
	now := time.Now().UTC()
	switch rng {
	case "day":
		return now.Add(-24 * time.Hour)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}
