package services

import (
	"strings"

	"github.com/lib/pq"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
	"accidenta/internal/repositories"
)

const maxHealthListEntries = 3

// UserService handles profile, trusted-contact and health-data logic.
type UserService struct {
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactRepository
	healthRepo  repositories.HealthDataRepository
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repositories.UserRepository,
	contactRepo repositories.ContactRepository,
	healthRepo repositories.HealthDataRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		contactRepo: contactRepo,
		healthRepo:  healthRepo,
	}
}

// GetProfile returns the user's own record.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetAllUsers returns every registered user.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// ListContacts returns the user's trusted contacts.
func (s *UserService) ListContacts(userID string) ([]models.TrustedContact, error) {
	return s.contactRepo.ListByOwner(userID)
}

// AddContact registers a new trusted contact for the user. The user's own
// email is rejected, and the contact email must be unique among the user's
// contacts (case-insensitive).
func (s *UserService) AddContact(userID, name, email string) (*models.TrustedContact, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(user.Email, email) {
		return nil, apperrors.New(apperrors.KindValidation, "No puedes agregar tu propio correo como contacto")
	}

	contacts, err := s.contactRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	for _, existing := range contacts {
		if strings.EqualFold(existing.Email, email) {
			return nil, apperrors.New(apperrors.KindConflict, "Ya existe un contacto con ese correo")
		}
	}

	contact := &models.TrustedContact{
		Name:   name,
		Email:  email,
		UserID: userID,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact modifies one of the user's contacts. A contact owned by
// another user is reported as not found, not forbidden.
func (s *UserService) UpdateContact(userID, contactID, name, email string) (*models.TrustedContact, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		return nil, err
	}
	if contact.UserID != userID {
		return nil, apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}

	if strings.EqualFold(user.Email, email) {
		return nil, apperrors.New(apperrors.KindValidation, "No puedes usar tu propio correo como contacto")
	}

	contacts, err := s.contactRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	for _, other := range contacts {
		if other.ID != contactID && strings.EqualFold(other.Email, email) {
			return nil, apperrors.New(apperrors.KindConflict, "Ya existe otro contacto con ese correo")
		}
	}

	contact.Name = name
	contact.Email = email
	if err := s.contactRepo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes one of the user's contacts.
func (s *UserService) DeleteContact(userID, contactID string) error {
	contact, err := s.contactRepo.GetByID(contactID)
	if err != nil {
		return err
	}
	if contact.UserID != userID {
		return apperrors.New(apperrors.KindNotFound, "Contacto no encontrado")
	}
	return s.contactRepo.Delete(contactID)
}

// GetHealthData returns the user's health record.
func (s *UserService) GetHealthData(userID string) (*models.HealthData, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.healthRepo.GetByUserID(userID)
}

// HealthDataInput is the payload for creating a health record.
type HealthDataInput struct {
	BloodType   string
	Height      string
	Weight      string
	Sex         string
	Pathologies []string
	Medications []string
	Allergies   []string
}

// AddHealthData creates the user's health record. A user has at most one.
func (s *UserService) AddHealthData(userID string, input HealthDataInput) (*models.HealthData, error) {
	if err := checkListLimits(input.Pathologies, input.Medications, input.Allergies); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	if _, err := s.healthRepo.GetByUserID(userID); err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "El usuario ya posee datos de salud registrados")
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	data := &models.HealthData{
		BloodType:   input.BloodType,
		Height:      input.Height,
		Weight:      input.Weight,
		Sex:         input.Sex,
		Pathologies: pq.StringArray(emptyIfNil(input.Pathologies)),
		Medications: pq.StringArray(emptyIfNil(input.Medications)),
		Allergies:   pq.StringArray(emptyIfNil(input.Allergies)),
		UserID:      userID,
	}
	if err := s.healthRepo.Create(data); err != nil {
		return nil, err
	}
	return data, nil
}

// HealthDataPatch is a partial update; nil fields are left untouched.
type HealthDataPatch struct {
	BloodType   *string
	Height      *string
	Weight      *string
	Sex         *string
	Pathologies *[]string
	Medications *[]string
	Allergies   *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p HealthDataPatch) IsEmpty() bool {
	return p.BloodType == nil && p.Height == nil && p.Weight == nil && p.Sex == nil &&
		p.Pathologies == nil && p.Medications == nil && p.Allergies == nil
}

// UpdateHealthData applies a partial update to the user's health record,
// creating an empty record first when none exists.
func (s *UserService) UpdateHealthData(userID string, patch HealthDataPatch) (*models.HealthData, error) {
	var lists [][]string
	for _, list := range []*[]string{patch.Pathologies, patch.Medications, patch.Allergies} {
		if list != nil {
			lists = append(lists, *list)
		}
	}
	if err := checkListLimits(lists...); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	data, err := s.healthRepo.GetByUserID(userID)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			return nil, err
		}
		data = &models.HealthData{
			UserID:      userID,
			Pathologies: pq.StringArray{},
			Medications: pq.StringArray{},
			Allergies:   pq.StringArray{},
		}
		if err := s.healthRepo.Create(data); err != nil {
			return nil, err
		}
	}

	if patch.BloodType != nil {
		data.BloodType = *patch.BloodType
	}
	if patch.Height != nil {
		data.Height = *patch.Height
	}
	if patch.Weight != nil {
		data.Weight = *patch.Weight
	}
	if patch.Sex != nil {
		data.Sex = *patch.Sex
	}
	if patch.Pathologies != nil {
		data.Pathologies = pq.StringArray(*patch.Pathologies)
	}
	if patch.Medications != nil {
		data.Medications = pq.StringArray(*patch.Medications)
	}
	if patch.Allergies != nil {
		data.Allergies = pq.StringArray(*patch.Allergies)
	}

	if err := s.healthRepo.Save(data); err != nil {
		return nil, err
	}
	return data, nil
}

func checkListLimits(lists ...[]string) error {
	for _, list := range lists {
		if len(list) > maxHealthListEntries {
			return apperrors.New(apperrors.KindValidation, "no puede tener más de 3 elementos")
		}
	}
	return nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
