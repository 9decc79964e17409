package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
	"accidenta/internal/repositories"
)

// AuthService handles business logic for registration and authentication.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: time.Hour,
	}
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	DNI       string
	FirstName string
	LastName  string
	BirthDate time.Time
	Phone     string
	Email     string
	Password  string
	Image     string
}

// Register creates a new user account. The pipeline is explicit: uniqueness
// checks, then password hashing, then save.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "El email ya esta registrado.")
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	if _, err := s.userRepo.GetByDNI(input.DNI); err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "El DNI ya esta registrado.")
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		DNI:       input.DNI,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: input.BirthDate,
		Phone:     input.Phone,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Image:     input.Image,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and returns a signed JWT. Unknown email and
// wrong password collapse into the same not-found error so callers cannot
// probe which one failed.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return "", apperrors.New(apperrors.KindNotFound, "Email o contraseña incorrectos.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.New(apperrors.KindNotFound, "Email o contraseña incorrectos.")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenDuration).Unix(),
		"iat":   time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthorized, "Invalid or expired token", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.New(apperrors.KindUnauthorized, "Invalid or expired token")
}
