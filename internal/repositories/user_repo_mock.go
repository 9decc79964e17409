package repositories

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Usuario no encontrado")
	}
	return &user, nil
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.find(func(user models.User) bool { return user.Email == email })
}

// GetByDNI returns a user by their national ID.
func (r *MockUserRepository) GetByDNI(dni string) (*models.User, error) {
	return r.find(func(user models.User) bool { return user.DNI == dni })
}

// GetAll returns all users ordered by last name.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].LastName < users[j].LastName
	})
	return users, nil
}

func (r *MockUserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			userCopy := user
			return &userCopy, nil
		}
	}
	return nil, apperrors.New(apperrors.KindNotFound, "Usuario no encontrado")
}
