package services_test

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
	"accidenta/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByDNI(dni string) (*models.User, error) {
	args := m.Called(dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

var errUserNotFound = apperrors.New(apperrors.KindNotFound, "Usuario no encontrado")

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		DNI:       "11111111",
		FirstName: "Ana",
		LastName:  "Pérez",
		BirthDate: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Phone:     "+541112345678",
		Email:     "ana@example.com",
		Password:  "password123",
		Image:     "default.png",
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByEmail", "ana@example.com").Return(nil, errUserNotFound).Once()
	mockRepo.On("GetByDNI", "11111111").Return(nil, errUserNotFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(user *models.User) bool {
		// The stored password must be a bcrypt hash of the input, never the
		// plaintext.
		return user.Password != "password123" &&
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	user, err := authService.Register(registerInput())
	assert.NoError(t, err)
	assert.Equal(t, "11111111", user.DNI)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByEmail", "ana@example.com").Return(&models.User{ID: "1"}, nil).Once()

	_, err := authService.Register(registerInput())
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "El email ya esta registrado.", err.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicateDNI(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByEmail", "ana@example.com").Return(nil, errUserNotFound).Once()
	mockRepo.On("GetByDNI", "11111111").Return(&models.User{ID: "1"}, nil).Once()

	_, err := authService.Register(registerInput())
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "El DNI ya esta registrado.", err.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "ana@example.com",
		Password: string(hashedPassword),
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	token, err := authService.Login("ana@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, user.Email, claims["email"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "ana@example.com", Password: string(hashedPassword)}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	_, err := authService.Login("ana@example.com", "wrongpassword")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Email o contraseña incorrectos.", err.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByEmail", "nadie@example.com").Return(nil, errUserNotFound).Once()

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := authService.Login("nadie@example.com", "password123")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Email o contraseña incorrectos.", err.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    "user-123",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["id"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}
