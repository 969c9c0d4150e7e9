package handler

import (
	"strconv"

	"github.com/Kwasin02/estimator-warframe/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogSvc *service.CatalogService
}

func NewCatalogHandler(catalogSvc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// GET /items/search?q=mesa&limit=20
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	limit := service.DefaultSearchLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = v
		}
	}

	return c.JSON(h.catalogSvc.Search(c.Context(), c.Query("q"), limit))
}
