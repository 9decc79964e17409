package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"accidenta/internal/models"
	"accidenta/internal/services"
)

// UserHandler handles HTTP requests for profile, trusted contacts and health
// data.
type UserHandler struct {
	userService   *services.UserService
	reportService *services.ReportService
	validate      *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, reportService *services.ReportService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		reportService: reportService,
		validate:      newValidate(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetAll)
	userRoutes.Get("/me", h.HandleGetMe)
	userRoutes.Get("/contactos", h.HandleListContacts)
	userRoutes.Post("/contactos", h.HandleAddContact)
	userRoutes.Put("/contactos/:id", h.HandleUpdateContact)
	userRoutes.Delete("/contactos/:id", h.HandleDeleteContact)
	userRoutes.Get("/datosSalud", h.HandleGetHealthData)
	userRoutes.Post("/datosSalud", h.HandleAddHealthData)
	userRoutes.Patch("/datosSalud", h.HandleUpdateHealthData)
}

// HandleGetAll returns every registered user. Passwords are never serialized.
func (h *UserHandler) HandleGetAll(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

type meResponse struct {
	models.User
	LastReport *models.Report `json:"lastReport"`
}

// HandleGetMe returns the caller's profile plus their most recent report.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		return respondError(c, err)
	}

	lastReport, err := h.reportService.LastByAuthor(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(meResponse{User: *user, LastReport: lastReport})
}

// HandleListContacts returns the caller's trusted contacts.
func (h *UserHandler) HandleListContacts(c *fiber.Ctx) error {
	contacts, err := h.userService.ListContacts(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contacts)
}

// ContactRequest is the trusted-contact payload.
type ContactRequest struct {
	Name  string `json:"nombre" validate:"required"`
	Email string `json:"mail" validate:"required,email"`
}

// HandleAddContact registers a new trusted contact for the caller.
func (h *UserHandler) HandleAddContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	contact, err := h.userService.AddContact(currentUserID(c), req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// HandleUpdateContact modifies one of the caller's contacts.
func (h *UserHandler) HandleUpdateContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	contact, err := h.userService.UpdateContact(currentUserID(c), c.Params("id"), req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contact)
}

// HandleDeleteContact removes one of the caller's contacts.
func (h *UserHandler) HandleDeleteContact(c *fiber.Ctx) error {
	if err := h.userService.DeleteContact(currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contacto eliminado"})
}

// HandleGetHealthData returns the caller's health record.
func (h *UserHandler) HandleGetHealthData(c *fiber.Ctx) error {
	data, err := h.userService.GetHealthData(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Datos de salud obtenidos correctamente",
		"datoDeSalud": data,
	})
}

// HealthDataRequest is the health-record creation payload; every field is
// optional.
type HealthDataRequest struct {
	BloodType   string   `json:"grupoSanguineo" validate:"omitempty,max=3"`
	Height      string   `json:"altura" validate:"omitempty,max=10"`
	Weight      string   `json:"peso" validate:"omitempty,max=10"`
	Sex         string   `json:"sexo" validate:"omitempty,max=20"`
	Pathologies []string `json:"patologias" validate:"omitempty,max=3"`
	Medications []string `json:"medicacion" validate:"omitempty,max=3"`
	Allergies   []string `json:"alergias" validate:"omitempty,max=3"`
}

// HandleAddHealthData creates the caller's health record.
func (h *UserHandler) HandleAddHealthData(c *fiber.Ctx) error {
	var req HealthDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	data, err := h.userService.AddHealthData(currentUserID(c), services.HealthDataInput{
		BloodType:   req.BloodType,
		Height:      req.Height,
		Weight:      req.Weight,
		Sex:         req.Sex,
		Pathologies: req.Pathologies,
		Medications: req.Medications,
		Allergies:   req.Allergies,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Dato de salud agregado correctamente",
		"data":    data,
	})
}

// HealthDataPatchRequest is the partial-update payload; absent fields stay
// untouched.
type HealthDataPatchRequest struct {
	BloodType   *string   `json:"grupoSanguineo"`
	Height      *string   `json:"altura"`
	Weight      *string   `json:"peso"`
	Sex         *string   `json:"sexo"`
	Pathologies *[]string `json:"patologias"`
	Medications *[]string `json:"medicacion"`
	Allergies   *[]string `json:"alergias"`
}

// HandleUpdateHealthData applies a partial update to the caller's health
// record, creating it when missing.
func (h *UserHandler) HandleUpdateHealthData(c *fiber.Ctx) error {
	var req HealthDataPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	patch := services.HealthDataPatch{
		BloodType:   req.BloodType,
		Height:      req.Height,
		Weight:      req.Weight,
		Sex:         req.Sex,
		Pathologies: req.Pathologies,
		Medications: req.Medications,
		Allergies:   req.Allergies,
	}
	if patch.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No se proporcionaron datos para actualizar",
		})
	}

	data, err := h.userService.UpdateHealthData(currentUserID(c), patch)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Datos de salud actualizados correctamente",
		"data":    data,
	})
}
