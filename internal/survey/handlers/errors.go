package handlers

import (
	"errors"
	"log"
	"net/http"

	"facility-survey/internal/survey/floorplan"
	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, floorplan.ErrImageNotLaidOut):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrSessionClosed),
		errors.Is(err, service.ErrNoPin):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c fiber.Ctx, tag string, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", tag, c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
