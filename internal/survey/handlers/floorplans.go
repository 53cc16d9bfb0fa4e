package handlers

import (
	"log"
	"net/http"

	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Floor Plan Handler
// ============================================================

type FloorPlanHandler struct {
	plans    *service.FloorPlanService
	maxBytes int64
}

func NewFloorPlanHandler(plans *service.FloorPlanService, maxBytes int64) *FloorPlanHandler {
	return &FloorPlanHandler{plans: plans, maxBytes: maxBytes}
}

type floorPlanPayload struct {
	models.FloorPlan
	URL string `json:"url,omitempty"`
}

func (h *FloorPlanHandler) payload(c fiber.Ctx, fp *models.FloorPlan) floorPlanPayload {
	url, err := h.plans.URL(c.Context(), fp)
	if err != nil {
		log.Printf("[FLOORPLAN] url for %s: %v", fp.ID, err)
	}
	return floorPlanPayload{FloorPlan: *fp, URL: url}
}

func (h *FloorPlanHandler) List(c fiber.Ctx) error {
	plans, err := h.plans.List(c.Context(), c.Query("building"))
	if err != nil {
		return writeError(c, "FLOORPLAN", err)
	}
	out := make([]floorPlanPayload, 0, len(plans))
	for i := range plans {
		out = append(out, h.payload(c, &plans[i]))
	}
	return c.JSON(fiber.Map{"floorPlans": out})
}

// Upload handles the multipart form: file, building, floor, description, uploadedBy.
func (h *FloorPlanHandler) Upload(c fiber.Ctx) error {
	data, err := readFormFile(c, "file", h.maxBytes)
	if err != nil {
		return writeError(c, "FLOORPLAN", err)
	}

	fp, err := h.plans.Upload(c.Context(), service.FloorPlanUpload{
		Building:    c.FormValue("building"),
		Floor:       c.FormValue("floor"),
		Description: c.FormValue("description"),
		UploadedBy:  c.FormValue("uploadedBy"),
		Data:        data,
	})
	if err != nil {
		return writeError(c, "FLOORPLAN", err)
	}
	return c.Status(http.StatusCreated).JSON(h.payload(c, fp))
}

func (h *FloorPlanHandler) Get(c fiber.Ctx) error {
	fp, err := h.plans.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, "FLOORPLAN", err)
	}
	return c.JSON(h.payload(c, fp))
}

func (h *FloorPlanHandler) Delete(c fiber.Ctx) error {
	fp, err := h.plans.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, "FLOORPLAN", err)
	}
	return c.JSON(fiber.Map{"deleted": fp.ID})
}
