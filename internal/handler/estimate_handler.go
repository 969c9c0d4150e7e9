package handler

import (
	"fmt"

	"github.com/Kwasin02/estimator-warframe/internal/model"
	"github.com/Kwasin02/estimator-warframe/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	maxEstimateItems = 20
	maxItemQuantity  = 999
)

type EstimateHandler struct {
	estimatorSvc *service.EstimatorService
}

func NewEstimateHandler(estimatorSvc *service.EstimatorService) *EstimateHandler {
	return &EstimateHandler{estimatorSvc: estimatorSvc}
}

// POST /estimate
func (h *EstimateHandler) Estimate(c *fiber.Ctx) error {
	var req model.EstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if msg := validateEstimateRequest(&req); msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(h.estimatorSvc.Estimate(c.Context(), &req))
}

// validateEstimateRequest enforces the inbound shape before the estimator
// runs; past this point quantities and list length are guaranteed in range.
func validateEstimateRequest(req *model.EstimateRequest) string {
	if len(req.Items) == 0 {
		return "items must contain at least 1 entry"
	}
	if len(req.Items) > maxEstimateItems {
		return fmt.Sprintf("items must contain at most %d entries", maxEstimateItems)
	}
	for i, it := range req.Items {
		if it.Slug == "" {
			return fmt.Sprintf("items[%d].slug is required", i)
		}
		if it.Quantity < 1 || it.Quantity > maxItemQuantity {
			return fmt.Sprintf("items[%d].quantity must be between 1 and %d", i, maxItemQuantity)
		}
	}
	return ""
}
