package handlers

import (
	"github.com/gofiber/fiber/v2"

	"accidenta/internal/services"
)

// StatisticsHandler handles HTTP requests for aggregate accident statistics.
type StatisticsHandler struct {
	statisticsService *services.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statisticsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// RegisterRoutes registers the statistics routes with the Fiber app.
func (h *StatisticsHandler) RegisterRoutes(router fiber.Router) {
	statsRoutes := router.Group("/statistics")
	statsRoutes.Get("/total-accidents", h.HandleTotal)
	statsRoutes.Get("/accident-type-top", h.HandleTopType)
	statsRoutes.Get("/zone-top", h.HandleTopZone)
}

// HandleTotal returns the report count in the requested range.
func (h *StatisticsHandler) HandleTotal(c *fiber.Ctx) error {
	amount, err := h.statisticsService.TotalReports(c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"amount": amount})
}

// HandleTopType returns the most frequent report type in the requested range.
func (h *StatisticsHandler) HandleTopType(c *fiber.Ctx) error {
	top, err := h.statisticsService.TopType(c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	if top == nil {
		return c.JSON(fiber.Map{
			"type":    nil,
			"amount":  0,
			"message": "No hay reportes de accidentes registrados.",
		})
	}
	return c.JSON(fiber.Map{"type": top.Type, "amount": top.Amount})
}

// HandleTopZone returns the most affected zone in the requested range.
func (h *StatisticsHandler) HandleTopZone(c *fiber.Ctx) error {
	top, err := h.statisticsService.TopZone(c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	if top == nil {
		return c.JSON(fiber.Map{
			"zone":    nil,
			"amount":  0,
			"message": "No hay reportes de accidentes registrados.",
		})
	}
	return c.JSON(fiber.Map{"zone": top.Zone, "amount": top.Amount})
}
