package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// Create inserts a new trusted contact.
func (r *GORMContactRepository) Create(contact *models.TrustedContact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Update saves the full contact row.
func (r *GORMContactRepository) Update(contact *models.TrustedContact) error {
	res := r.db.Save(contact)
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}
	return nil
}

// Delete removes a contact by its ID.
func (r *GORMContactRepository) Delete(id string) error {
	res := r.db.Delete(&models.TrustedContact{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}
	return nil
}

// GetByID retrieves a contact by its ID.
func (r *GORMContactRepository) GetByID(id string) (*models.TrustedContact, error) {
	var contact models.TrustedContact
	if err := r.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "Contacto no encontrado", err)
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}

// ListByOwner returns all contacts belonging to a user, oldest first.
func (r *GORMContactRepository) ListByOwner(userID string) ([]models.TrustedContact, error) {
	var contacts []models.TrustedContact
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// ListByOwnerDNI returns the contacts of the user whose DNI matches.
func (r *GORMContactRepository) ListByOwnerDNI(dni string) ([]models.TrustedContact, error) {
	var contacts []models.TrustedContact
	err := r.db.
		Joins("JOIN users ON users.id = trusted_contacts.user_id").
		Where("users.dni = ?", dni).
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts by owner DNI: %w", err)
	}
	return contacts, nil
}
