package handlers

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"accidenta/internal/services"
)

var phoneRegexp = regexp.MustCompile(`^\+?\d{7,15}$`)

// newValidate builds the request validator shared by all handlers, with the
// phone format rule registered.
func newValidate() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	return validate
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	uploadsDir  string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, uploadsDir string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidate(),
		uploadsDir:  uploadsDir,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterRequest is the multipart registration form.
type RegisterRequest struct {
	DNI       string `form:"dni" json:"dni" validate:"required,len=8,numeric"`
	FirstName string `form:"nombre" json:"nombre" validate:"required"`
	LastName  string `form:"apellido" json:"apellido" validate:"required"`
	BirthDate string `form:"fechaNacimiento" json:"fechaNacimiento" validate:"required"`
	Phone     string `form:"telefono" json:"telefono" validate:"required,phone"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"password" validate:"required,min=8,max=20"`
}

// HandleRegister handles new user registration, with an optional profile
// image in the multipart field "imagen".
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{"fechaNacimiento": "must be a YYYY-MM-DD date"},
		})
	}

	image := "default.png"
	if file, err := c.FormFile("imagen"); err == nil && file != nil {
		image, err = saveUpload(c, file, h.uploadsDir)
		if err != nil {
			return respondError(c, err)
		}
	}

	_, err = h.authService.Register(services.RegisterInput{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Image:     image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Usuario registrado"})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user; the issued token is returned in the body
// and echoed in the Authorization header for the mobile client.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Access-Control-Expose-Headers", "Authorization")
	c.Set("Authorization", "Bearer "+token)
	return c.JSON(fiber.Map{"token": token})
}
