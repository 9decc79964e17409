package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
// Fan-out lookups by owner DNI resolve through an injected owner index since
// there is no SQL join to lean on.
type MockContactRepository struct {
	contacts  map[string]models.TrustedContact
	ownerDNIs map[string]string // userID -> DNI
	mu        sync.RWMutex
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts:  make(map[string]models.TrustedContact),
		ownerDNIs: make(map[string]string),
	}
}

// RegisterOwner records the DNI of a contact owner for ListByOwnerDNI lookups.
func (r *MockContactRepository) RegisterOwner(userID, dni string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ownerDNIs[userID] = dni
}

// Create adds a new contact.
func (r *MockContactRepository) Create(contact *models.TrustedContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Update modifies an existing contact.
func (r *MockContactRepository) Update(contact *models.TrustedContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[contact.ID]; !ok {
		return apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Delete removes a contact by its ID.
func (r *MockContactRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}
	delete(r.contacts, id)
	return nil
}

// GetByID returns a contact by its ID.
func (r *MockContactRepository) GetByID(id string) (*models.TrustedContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}
	return &contact, nil
}

// ListByOwner returns all contacts of a user, oldest first.
func (r *MockContactRepository) ListByOwner(userID string) ([]models.TrustedContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var contacts []models.TrustedContact
	for _, contact := range r.contacts {
		if contact.UserID == userID {
			contacts = append(contacts, contact)
		}
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.Before(contacts[j].CreatedAt)
	})
	return contacts, nil
}

// ListByOwnerDNI returns the contacts of the user registered under the DNI.
func (r *MockContactRepository) ListByOwnerDNI(dni string) ([]models.TrustedContact, error) {
	r.mu.RLock()
	ownerID := ""
	for userID, ownerDNI := range r.ownerDNIs {
		if ownerDNI == dni {
			ownerID = userID
			break
		}
	}
	r.mu.RUnlock()

	if ownerID == "" {
		return nil, nil
	}
	return r.ListByOwner(ownerID)
}
