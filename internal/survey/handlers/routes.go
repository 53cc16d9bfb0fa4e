package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Routes
// ============================================================

type Handlers struct {
	Health     *HealthHandler
	Location   *LocationHandler
	Catalog    *CatalogHandler
	FloorPlans *FloorPlanHandler
	Photos     *PhotoHandler
	Gallery    *GalleryHandler
	Capture    *CaptureHandler
}

// Register mounts health probes, docs and the placeholder image on app, and
// the API under /api/v1.
func Register(app *fiber.App, h Handlers) {
	app.Get("/health/live", h.Health.Liveness)
	app.Get("/health/ready", h.Health.Readiness)
	app.Get("/health/startup", h.Health.Startup)

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", OpenAPISpec)

	app.Get(PlaceholderImagePath, PlaceholderImage)

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Facility Survey API v1",
			"status":  "ok",
		})
	})

	// Photos
	api.Patch("/photos/location", h.Location.Update)
	api.Post("/photos", h.Photos.Upload)
	api.Get("/photos/:id", h.Photos.Get)
	api.Get("/photos/:id/file", h.Photos.File)
	api.Delete("/photos/:id", h.Photos.Delete)
	api.Get("/submissions/:id/photos", h.Photos.ListBySubmission)
	api.Post("/walkers", h.Photos.CreateWalker)
	api.Post("/submissions", h.Photos.CreateSubmission)

	// Buildings & floors
	api.Get("/buildings", h.Catalog.Buildings)
	api.Get("/floors", h.Catalog.Floors)
	api.Get("/floorplan-image", h.Catalog.FloorPlanImage)

	// Floor plans
	api.Get("/floorplans", h.FloorPlans.List)
	api.Post("/floorplans", h.FloorPlans.Upload)
	api.Get("/floorplans/:id", h.FloorPlans.Get)
	api.Delete("/floorplans/:id", h.FloorPlans.Delete)

	// Gallery
	api.Get("/gallery", h.Gallery.Tree)
	api.Get("/gallery/overlay.svg", h.Gallery.Overlay)

	// Capture sessions
	api.Post("/captures", h.Capture.Open)
	api.Get("/captures/:id", h.Capture.Get)
	api.Post("/captures/:id/:event", h.Capture.Event)
}
