package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
)

// GORMHealthDataRepository is a GORM implementation of HealthDataRepository.
type GORMHealthDataRepository struct {
	db *gorm.DB
}

// NewGORMHealthDataRepository creates a new instance of GORMHealthDataRepository.
func NewGORMHealthDataRepository(db *gorm.DB) *GORMHealthDataRepository {
	return &GORMHealthDataRepository{db: db}
}

// Create inserts a new health-data row.
func (r *GORMHealthDataRepository) Create(data *models.HealthData) error {
	if data.ID == "" {
		data.ID = uuid.New().String()
	}
	if err := r.db.Create(data).Error; err != nil {
		return fmt.Errorf("failed to create health data: %w", err)
	}
	return nil
}

// Save persists the full health-data row.
func (r *GORMHealthDataRepository) Save(data *models.HealthData) error {
	if err := r.db.Save(data).Error; err != nil {
		return fmt.Errorf("failed to save health data: %w", err)
	}
	return nil
}

// GetByUserID retrieves the health data of a user.
func (r *GORMHealthDataRepository) GetByUserID(userID string) (*models.HealthData, error) {
	var data models.HealthData
	if err := r.db.First(&data, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "No hay datos de salud registrados", err)
		}
		return nil, fmt.Errorf("failed to get health data for user %s: %w", userID, err)
	}
	return &data, nil
}
