package handlers

import (
	"encoding/json"
	"net/http"

	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Photo Handler
// ============================================================

type PhotoHandler struct {
	photos   *service.PhotoService
	maxBytes int64
}

func NewPhotoHandler(photos *service.PhotoService, maxBytes int64) *PhotoHandler {
	return &PhotoHandler{photos: photos, maxBytes: maxBytes}
}

// Upload handles the multipart form: file, submissionId, category, roomNumber, caption.
func (h *PhotoHandler) Upload(c fiber.Ctx) error {
	data, err := readFormFile(c, "file", h.maxBytes)
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}

	p, err := h.photos.Upload(c.Context(), service.PhotoUpload{
		SubmissionID: c.FormValue("submissionId"),
		Category:     c.FormValue("category"),
		RoomNumber:   c.FormValue("roomNumber"),
		Caption:      c.FormValue("caption"),
		Data:         data,
	})
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.Status(http.StatusCreated).JSON(p)
}

func (h *PhotoHandler) Get(c fiber.Ctx) error {
	p, err := h.photos.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.JSON(p)
}

// File redirects to the stored image.
func (h *PhotoHandler) File(c fiber.Ctx) error {
	url, err := h.photos.FileURL(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.Redirect().Status(http.StatusFound).To(url)
}

func (h *PhotoHandler) Delete(c fiber.Ctx) error {
	p, err := h.photos.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.JSON(fiber.Map{"deleted": p.ID})
}

func (h *PhotoHandler) ListBySubmission(c fiber.Ctx) error {
	photos, err := h.photos.ListBySubmission(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.JSON(fiber.Map{"photos": photos})
}

type walkerRequest struct {
	Name   string `json:"name"`
	School string `json:"school"`
}

func (h *PhotoHandler) CreateWalker(c fiber.Ctx) error {
	var req walkerRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	w, err := h.photos.CreateWalker(c.Context(), req.Name, req.School)
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.Status(http.StatusCreated).JSON(w)
}

type submissionRequest struct {
	WalkerID   string `json:"walkerId"`
	SurveyDate string `json:"surveyDate"`
}

func (h *PhotoHandler) CreateSubmission(c fiber.Ctx) error {
	var req submissionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	s, err := h.photos.CreateSubmission(c.Context(), req.WalkerID, req.SurveyDate)
	if err != nil {
		return writeError(c, "PHOTOS", err)
	}
	return c.Status(http.StatusCreated).JSON(s)
}
