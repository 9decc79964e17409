package repositories

import "accidenta/internal/models"

// ContactRepository defines the interface for trusted-contact data access.
type ContactRepository interface {
	Create(contact *models.TrustedContact) error
	Update(contact *models.TrustedContact) error
	Delete(id string) error
	GetByID(id string) (*models.TrustedContact, error)
	ListByOwner(userID string) ([]models.TrustedContact, error)
	// ListByOwnerDNI returns the contacts of the user whose DNI matches; this
	// is the notification fan-out lookup.
	ListByOwnerDNI(dni string) ([]models.TrustedContact, error)
}
