package handlers

import (
	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Gallery Handler
// ============================================================

type GalleryHandler struct {
	gallery *service.Gallery
}

func NewGalleryHandler(gallery *service.Gallery) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

func (h *GalleryHandler) Tree(c fiber.Ctx) error {
	tree, err := h.gallery.Build(c.Context())
	if err != nil {
		return writeError(c, "GALLERY", err)
	}
	return c.JSON(tree)
}

// Overlay renders one floor with its pins as SVG.
func (h *GalleryHandler) Overlay(c fiber.Ctx) error {
	building := c.Query("building")
	floor := c.Query("floor")
	if building == "" || floor == "" {
		return badRequest(c, "building and floor are required")
	}
	if floor != models.UnknownFloorGroup {
		floor = models.NormalizeFloor(floor)
	}

	svg, err := h.gallery.Overlay(c.Context(), building, floor)
	if err != nil {
		return writeError(c, "GALLERY", err)
	}
	c.Type("svg")
	return c.SendString(svg)
}
