package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"accidenta/internal/services"
)

const maxReportImages = 3

// ReportHandler handles HTTP requests for accident and urgency reports.
type ReportHandler struct {
	reportService *services.ReportService
	validate      *validator.Validate
	uploadsDir    string
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService, uploadsDir string) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validate:      newValidate(),
		uploadsDir:    uploadsDir,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Post("/", h.HandleCreate)
	reportRoutes.Get("/", h.HandleListByAuthor)
	reportRoutes.Get("/involved", h.HandleListInvolving)
	reportRoutes.Post("/urgencia", h.HandleCreateUrgency)
}

// ReportRequest is the multipart accident-report form.
type ReportRequest struct {
	Type        string `form:"tipoAccidente" json:"tipoAccidente" validate:"required"`
	DNI         string `form:"dni" json:"dni" validate:"required,len=8,numeric"`
	Description string `form:"descripcion" json:"descripcion" validate:"required,min=10,max=500"`
	Location    string `form:"ubicacion" json:"ubicacion" validate:"required"`
}

// HandleCreate handles accident-report submission with up to 3 images in the
// multipart field "imagenes". The image cap is enforced at the upload layer,
// before anything is stored.
func (h *ReportHandler) HandleCreate(c *fiber.Ctx) error {
	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	var images []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["imagenes"]
		if len(files) > maxReportImages {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "El reporte admite un máximo de 3 imágenes",
			})
		}
		for _, file := range files {
			name, err := saveUpload(c, file, h.uploadsDir)
			if err != nil {
				return respondError(c, err)
			}
			images = append(images, name)
		}
	}

	report, err := h.reportService.Create(currentUserID(c), services.CreateReportInput{
		Type:        req.Type,
		DNI:         req.DNI,
		Description: req.Description,
		Location:    req.Location,
		Images:      images,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// UrgencyRequest is the one-tap urgency payload: only a location.
type UrgencyRequest struct {
	Location string `json:"ubicacion"`
}

// HandleCreateUrgency handles the one-tap emergency alert.
func (h *ReportHandler) HandleCreateUrgency(c *fiber.Ctx) error {
	var req UrgencyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "La ubicación es obligatoria",
		})
	}

	report, err := h.reportService.CreateUrgency(currentUserID(c), req.Location)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleListByAuthor returns a page of the caller's own reports.
func (h *ReportHandler) HandleListByAuthor(c *fiber.Ctx) error {
	page, err := h.reportService.ListByAuthor(currentUserID(c), c.Query("lastId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleListInvolving returns a page of reports naming the caller as subject.
func (h *ReportHandler) HandleListInvolving(c *fiber.Ctx) error {
	page, err := h.reportService.ListInvolving(currentUserID(c), c.Query("lastId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
