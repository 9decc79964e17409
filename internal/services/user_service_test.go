package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
	"accidenta/internal/repositories"
	"accidenta/internal/services"
)

type userFixture struct {
	userRepo    *repositories.MockUserRepository
	contactRepo *repositories.MockContactRepository
	healthRepo  *repositories.MockHealthDataRepository
	service     *services.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		userRepo:    repositories.NewMockUserRepository(),
		contactRepo: repositories.NewMockContactRepository(),
		healthRepo:  repositories.NewMockHealthDataRepository(),
	}
	f.service = services.NewUserService(f.userRepo, f.contactRepo, f.healthRepo)
	return f
}

func (f *userFixture) addUser(t *testing.T, dni, email string) *models.User {
	t.Helper()
	user := &models.User{
		DNI:       dni,
		FirstName: "Ana",
		LastName:  "Test",
		Email:     email,
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func TestUserService_AddContact(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	contact, err := f.service.AddContact(user.ID, "Bruno", "bruno@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, user.ID, contact.UserID)

	contacts, err := f.service.ListContacts(user.ID)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestUserService_AddContactOwnEmail(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	// Case-insensitive match against the owner's own address.
	_, err := f.service.AddContact(user.ID, "Yo", "ANA@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "No puedes agregar tu propio correo como contacto", err.Error())
}

func TestUserService_AddContactDuplicateEmail(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	_, err := f.service.AddContact(user.ID, "Bruno", "bruno@example.com")
	require.NoError(t, err)

	_, err = f.service.AddContact(user.ID, "Otro Bruno", "BRUNO@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "Ya existe un contacto con ese correo", err.Error())

	// A different user can register the same contact email.
	other := f.addUser(t, "22222222", "luis@example.com")
	_, err = f.service.AddContact(other.ID, "Bruno", "bruno@example.com")
	assert.NoError(t, err)
}

func TestUserService_UpdateContact(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")
	contact, err := f.service.AddContact(user.ID, "Bruno", "bruno@example.com")
	require.NoError(t, err)

	updated, err := f.service.UpdateContact(user.ID, contact.ID, "Bruno M", "brunom@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bruno M", updated.Name)
	assert.Equal(t, "brunom@example.com", updated.Email)
}

func TestUserService_UpdateContactNotOwned(t *testing.T) {
	f := newUserFixture()
	owner := f.addUser(t, "11111111", "ana@example.com")
	intruder := f.addUser(t, "22222222", "luis@example.com")
	contact, err := f.service.AddContact(owner.ID, "Bruno", "bruno@example.com")
	require.NoError(t, err)

	_, err = f.service.UpdateContact(intruder.ID, contact.ID, "Hack", "hack@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Contacto no encontrado", err.Error())
}

func TestUserService_UpdateContactDuplicateEmail(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")
	_, err := f.service.AddContact(user.ID, "Bruno", "bruno@example.com")
	require.NoError(t, err)
	carla, err := f.service.AddContact(user.ID, "Carla", "carla@example.com")
	require.NoError(t, err)

	_, err = f.service.UpdateContact(user.ID, carla.ID, "Carla", "bruno@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "Ya existe otro contacto con ese correo", err.Error())

	// Keeping the contact's own email is not a duplicate.
	_, err = f.service.UpdateContact(user.ID, carla.ID, "Carla B", "carla@example.com")
	assert.NoError(t, err)
}

func TestUserService_DeleteContact(t *testing.T) {
	f := newUserFixture()
	owner := f.addUser(t, "11111111", "ana@example.com")
	intruder := f.addUser(t, "22222222", "luis@example.com")
	contact, err := f.service.AddContact(owner.ID, "Bruno", "bruno@example.com")
	require.NoError(t, err)

	err = f.service.DeleteContact(intruder.ID, contact.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	require.NoError(t, f.service.DeleteContact(owner.ID, contact.ID))

	contacts, err := f.service.ListContacts(owner.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	err = f.service.DeleteContact(owner.ID, contact.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUserService_AddHealthData(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	data, err := f.service.AddHealthData(user.ID, services.HealthDataInput{
		BloodType:   "A+",
		Height:      "170",
		Weight:      "65",
		Sex:         "F",
		Pathologies: []string{"asma"},
	})
	require.NoError(t, err)
	assert.Equal(t, "A+", data.BloodType)
	assert.Equal(t, []string{"asma"}, []string(data.Pathologies))
	assert.NotNil(t, data.Medications)
	assert.Empty(t, data.Medications)
}

func TestUserService_AddHealthDataTwice(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	_, err := f.service.AddHealthData(user.ID, services.HealthDataInput{BloodType: "A+"})
	require.NoError(t, err)

	_, err = f.service.AddHealthData(user.ID, services.HealthDataInput{BloodType: "B+"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "El usuario ya posee datos de salud registrados", err.Error())
}

func TestUserService_HealthDataListLimit(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	tooMany := []string{"a", "b", "c", "d"}

	_, err := f.service.AddHealthData(user.ID, services.HealthDataInput{Allergies: tooMany})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "no puede tener más de 3 elementos", err.Error())

	_, err = f.service.UpdateHealthData(user.ID, services.HealthDataPatch{Medications: &tooMany})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	exactly := []string{"a", "b", "c"}
	_, err = f.service.AddHealthData(user.ID, services.HealthDataInput{Allergies: exactly})
	assert.NoError(t, err)
}

func TestUserService_GetHealthDataMissing(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	_, err := f.service.GetHealthData(user.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "No hay datos de salud registrados", err.Error())
}

func TestUserService_UpdateHealthDataPartial(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	_, err := f.service.AddHealthData(user.ID, services.HealthDataInput{
		BloodType: "A+",
		Height:    "170",
		Allergies: []string{"polen"},
	})
	require.NoError(t, err)

	weight := "70"
	meds := []string{"ibuprofeno"}
	data, err := f.service.UpdateHealthData(user.ID, services.HealthDataPatch{
		Weight:      &weight,
		Medications: &meds,
	})
	require.NoError(t, err)

	assert.Equal(t, "70", data.Weight)
	assert.Equal(t, []string{"ibuprofeno"}, []string(data.Medications))
	// Untouched fields survive the patch.
	assert.Equal(t, "A+", data.BloodType)
	assert.Equal(t, "170", data.Height)
	assert.Equal(t, []string{"polen"}, []string(data.Allergies))
}

func TestUserService_UpdateHealthDataCreatesRecord(t *testing.T) {
	f := newUserFixture()
	user := f.addUser(t, "11111111", "ana@example.com")

	bloodType := "O-"
	data, err := f.service.UpdateHealthData(user.ID, services.HealthDataPatch{BloodType: &bloodType})
	require.NoError(t, err)
	assert.Equal(t, "O-", data.BloodType)
	assert.NotNil(t, data.Pathologies)

	stored, err := f.service.GetHealthData(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "O-", stored.BloodType)
}

func TestUserService_UnknownUser(t *testing.T) {
	f := newUserFixture()

	_, err := f.service.GetProfile("missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Usuario no encontrado", err.Error())

	_, err = f.service.AddContact("missing", "Bruno", "bruno@example.com")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = f.service.GetHealthData("missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
