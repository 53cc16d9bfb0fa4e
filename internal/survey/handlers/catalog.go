package handlers

import (
	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Building / Floor Catalog Handler
// ============================================================

type CatalogHandler struct {
	resolver *service.Resolver
}

func NewCatalogHandler(resolver *service.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: resolver}
}

func (h *CatalogHandler) Buildings(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"buildings": h.resolver.ListBuildings(c.Context())})
}

func (h *CatalogHandler) Floors(c fiber.Ctx) error {
	building := c.Query("building")
	if building == "" {
		return badRequest(c, "building is required")
	}
	return c.JSON(fiber.Map{
		"building": building,
		"floors":   h.resolver.ListFloors(c.Context(), building),
	})
}

// FloorPlanImage reports the active plan URL, or the placeholder when none exists.
func (h *CatalogHandler) FloorPlanImage(c fiber.Ctx) error {
	building := c.Query("building")
	floor := models.NormalizeFloor(c.Query("floor"))
	if building == "" || floor == "" {
		return badRequest(c, "building and floor are required")
	}

	url, placeholder := h.resolver.ImageOrPlaceholder(c.Context(), building, floor)
	return c.JSON(fiber.Map{
		"building":    building,
		"floor":       floor,
		"url":         url,
		"placeholder": placeholder,
	})
}
