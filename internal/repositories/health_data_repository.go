package repositories

import "accidenta/internal/models"

// HealthDataRepository defines the interface for health-data access.
type HealthDataRepository interface {
	Create(data *models.HealthData) error
	Save(data *models.HealthData) error
	GetByUserID(userID string) (*models.HealthData, error)
}
