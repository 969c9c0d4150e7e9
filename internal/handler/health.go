package handler

import (
	"github.com/Kwasin02/estimator-warframe/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	catalogSvc *service.CatalogService
}

func NewHealthHandler(catalogSvc *service.CatalogService) *HealthHandler {
	return &HealthHandler{catalogSvc: catalogSvc}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports whether a catalog snapshot has been loaded. It never
// probes warframe.market directly, so readiness polling costs no upstream
// rate budget.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if !h.catalogSvc.Primed() {
		return c.Status(503).JSON(fiber.Map{"status": "not ready", "error": "catalog not loaded"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
