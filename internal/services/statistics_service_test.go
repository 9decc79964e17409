package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accidenta/internal/models"
	"accidenta/internal/repositories"
	"accidenta/internal/services"
)

func seedStatReport(t *testing.T, repo *repositories.MockReportRepository, reportType, location string, age time.Duration) {
	t.Helper()
	require.NoError(t, repo.Create(&models.Report{
		Type:        reportType,
		DNI:         "11111111",
		Description: "x",
		Location:    location,
		UserID:      "user-1",
		CreatedAt:   time.Now().UTC().Add(-age),
	}))
}

func TestStatisticsService_TotalReports(t *testing.T) {
	repo := repositories.NewMockReportRepository()
	service := services.NewStatisticsService(repo)

	seedStatReport(t, repo, "choque", "Av. Corrientes 1234, Balvanera, CABA", time.Hour)
	seedStatReport(t, repo, "caida", "Calle 1, Centro", 3*24*time.Hour)
	seedStatReport(t, repo, "caida", "Calle 2, Centro", 15*24*time.Hour)
	seedStatReport(t, repo, "incendio", "Calle 3, Norte", 60*24*time.Hour)

	day, err := service.TotalReports("day")
	require.NoError(t, err)
	assert.Equal(t, int64(1), day)

	week, err := service.TotalReports("week")
	require.NoError(t, err)
	assert.Equal(t, int64(2), week)

	month, err := service.TotalReports("month")
	require.NoError(t, err)
	assert.Equal(t, int64(3), month)

	all, err := service.TotalReports("")
	require.NoError(t, err)
	assert.Equal(t, int64(4), all)
}

func TestStatisticsService_TopType(t *testing.T) {
	repo := repositories.NewMockReportRepository()
	service := services.NewStatisticsService(repo)

	top, err := service.TopType("")
	require.NoError(t, err)
	assert.Nil(t, top)

	seedStatReport(t, repo, "caida", "Calle 1, Centro", time.Hour)
	seedStatReport(t, repo, "caida", "Calle 2, Centro", 2*time.Hour)
	seedStatReport(t, repo, "choque", "Calle 3, Centro", 3*time.Hour)
	seedStatReport(t, repo, "choque", "Calle 4, Centro", 40*24*time.Hour)

	top, err = service.TopType("month")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "caida", top.Type)
	assert.Equal(t, int64(2), top.Amount)

	// Without a window the old report ties the counts; ties resolve to the
	// lexicographically smaller type.
	top, err = service.TopType("")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "caida", top.Type)
}

func TestStatisticsService_TopZone(t *testing.T) {
	repo := repositories.NewMockReportRepository()
	service := services.NewStatisticsService(repo)

	top, err := service.TopZone("")
	require.NoError(t, err)
	assert.Nil(t, top)

	seedStatReport(t, repo, "choque", "Av. Corrientes 1234, Balvanera, CABA", time.Hour)
	seedStatReport(t, repo, "caida", "Av. Corrientes 2000,   Balvanera  , CABA", 2*time.Hour)
	seedStatReport(t, repo, "caida", "Calle 1, Caballito", 3*time.Hour)

	top, err = service.TopZone("day")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "Balvanera", top.Zone)
	assert.Equal(t, int64(2), top.Amount)
}

func TestStatisticsService_TopZoneWithoutCommaSegment(t *testing.T) {
	repo := repositories.NewMockReportRepository()
	service := services.NewStatisticsService(repo)

	// Free-text locations with no second segment fall into a blank zone
	// bucket rather than breaking the aggregate.
	seedStatReport(t, repo, "caida", "plaza central", time.Hour)
	seedStatReport(t, repo, "caida", "otro lugar", 2*time.Hour)
	seedStatReport(t, repo, "caida", "Calle 9, Sur", 3*time.Hour)

	top, err := service.TopZone("")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "", top.Zone)
	assert.Equal(t, int64(2), top.Amount)
}
