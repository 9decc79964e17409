package repositories

import (
	"sync"

	"github.com/google/uuid"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
)

// MockHealthDataRepository is an in-memory implementation of HealthDataRepository.
type MockHealthDataRepository struct {
	records map[string]models.HealthData // keyed by owner user ID
	mu      sync.RWMutex
}

// NewMockHealthDataRepository creates a new instance of MockHealthDataRepository.
func NewMockHealthDataRepository() *MockHealthDataRepository {
	return &MockHealthDataRepository{
		records: make(map[string]models.HealthData),
	}
}

// Create adds a new health-data row.
func (r *MockHealthDataRepository) Create(data *models.HealthData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data.ID == "" {
		data.ID = uuid.New().String()
	}
	r.records[data.UserID] = *data
	return nil
}

// Save persists the full health-data row.
func (r *MockHealthDataRepository) Save(data *models.HealthData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data.ID == "" {
		data.ID = uuid.New().String()
	}
	r.records[data.UserID] = *data
	return nil
}

// GetByUserID returns the health data of a user.
func (r *MockHealthDataRepository) GetByUserID(userID string) (*models.HealthData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.records[userID]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "No hay datos de salud registrados")
	}
	return &data, nil
}
