package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Location Handler
// ============================================================

type LocationHandler struct {
	gateway *service.LocationGateway
}

func NewLocationHandler(gateway *service.LocationGateway) *LocationHandler {
	return &LocationHandler{gateway: gateway}
}

type locationRequest struct {
	PhotoID  string                `json:"photoId"`
	X        json.RawMessage       `json:"x"`
	Y        json.RawMessage       `json:"y"`
	Floor    models.OptionalString `json:"floor"`
	Building models.OptionalString `json:"building"`
}

// Update handles PATCH /photos/location.
func (h *LocationHandler) Update(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return badRequest(c, "empty body")
	}

	var req locationRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.PhotoID == "" {
		return badRequest(c, "photoId is required")
	}
	x, okX := jsonNumber(req.X)
	y, okY := jsonNumber(req.Y)
	if !okX || !okY {
		return badRequest(c, "x and y must be numbers")
	}

	record, err := h.gateway.UpdateLocation(c.Context(), models.LocationUpdate{
		PhotoID:  req.PhotoID,
		X:        x,
		Y:        y,
		Floor:    req.Floor,
		Building: req.Building,
		Status:   models.LocationLocated,
	})
	if err != nil {
		return writeError(c, "LOCATION", err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"record":  record,
	})
}

// jsonNumber accepts only a JSON number literal.
func jsonNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}
